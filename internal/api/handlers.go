package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/egpension/internal/authority"
	"github.com/rgehrsitz/egpension/internal/calculation"
	"github.com/rgehrsitz/egpension/internal/config"
	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
)

const maxBodyBytes = 1 << 20

// Handler serves the calculation endpoints over one loaded table set.
type Handler struct {
	Engine *calculation.CalculationEngine
	Parser *config.InputParser
	Tables *domain.TableSet
}

// NewHandler creates a handler computing against tables.
func NewHandler(engine *calculation.CalculationEngine, tables *domain.TableSet) *Handler {
	return &Handler{
		Engine: engine,
		Parser: config.NewInputParser(),
		Tables: tables,
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Progression returns the full pension progression for a form.
func (h *Handler) Progression(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	data, err := h.Engine.ProgressionForForm(form, h.Tables)
	if err != nil {
		writeCalculationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// Settlement runs the dues calculation for a form.
func (h *Handler) Settlement(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	res, err := h.Engine.Calculate(form, h.Tables)
	if err != nil {
		writeCalculationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// PensionAt returns the pension in force at the requested date.
func (h *Handler) PensionAt(w http.ResponseWriter, r *http.Request) {
	var req PensionAtRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	target, ok := parseTarget(req.Date)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM or DD/MM/YYYY)", nil)
		return
	}
	if err := h.Parser.ValidateForm(&req.Form); err != nil {
		writeCalculationError(w, err)
		return
	}
	data, err := h.Engine.ProgressionForForm(&req.Form, h.Tables)
	if err != nil {
		writeCalculationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PensionAtResponse{
		Date:                     target,
		Pension:                  calculation.PensionAt(target, data, req.IncludeExceptionalGrants),
		IncludeExceptionalGrants: req.IncludeExceptionalGrants,
	})
}

// ResolveTables reports the bonus table and minimum pension for ?date=.
func (h *Handler) ResolveTables(w http.ResponseWriter, r *http.Request) {
	target, ok := parseTarget(r.URL.Query().Get("date"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM or DD/MM/YYYY)", nil)
		return
	}
	resp := TableResolutionResponse{
		Date:       target,
		BonusTable: authority.ResolveBonusTableName(target, h.Tables),
	}
	if t, ok := h.Tables.Find(domain.MinimumPensionTableName); ok {
		resp.MinimumPension = authority.ResolveMinimumPension(target, authority.ParseMinimumSchedule(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListTables lists the loaded tables.
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TablesResponse{
		Names:       h.Tables.Names(),
		Fingerprint: strconv.FormatUint(h.Tables.Fingerprint(), 16),
		Issues:      h.Parser.ValidateTables(h.Tables),
	})
}

func (h *Handler) decodeForm(w http.ResponseWriter, r *http.Request) (*domain.InsuranceDuesFormData, bool) {
	var form domain.InsuranceDuesFormData
	if err := decodeBody(w, r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return nil, false
	}
	if err := h.Parser.ValidateForm(&form); err != nil {
		writeCalculationError(w, err)
		return nil, false
	}
	return &form, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func parseTarget(s string) (time.Time, bool) {
	if t, ok := dateutil.ParseYearMonth(s); ok {
		return t, true
	}
	return dateutil.ParseDate(s)
}

// writeCalculationError maps engine and validation errors onto HTTP
// statuses: rejected input is 422, an unknown law or dues type is 400.
func writeCalculationError(w http.ResponseWriter, err error) {
	var (
		formErr  *config.FormError
		valErr   *calculation.ValidationError
		scopeErr *calculation.LawScopeError
	)
	switch {
	case errors.As(err, &formErr):
		resp := ErrorResponse{Error: "Invalid form", Details: err.Error()}
		for _, f := range formErr.Fields {
			resp.Fields = append(resp.Fields, FieldErrorBody{Field: f.Field, Rule: f.Rule})
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.As(err, &valErr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   err.Error(),
			Field:   valErr.Field,
			Period:  valErr.Period,
			Details: valErr.Reason,
		})
	case errors.As(err, &scopeErr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:      err.Error(),
			Applicable: string(scopeErr.Applicable),
		})
	case errors.Is(err, calculation.ErrNoProgressionData):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, calculation.ErrUnknownLaw), errors.Is(err, calculation.ErrUnknownDuesType):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "Calculation failed", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
