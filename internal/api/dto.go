package api

import (
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/shopspring/decimal"
)

// PensionAtRequest asks for the pension in force at Date (YYYY-MM or a day date).
type PensionAtRequest struct {
	Form                     domain.InsuranceDuesFormData `json:"form"`
	Date                     string                       `json:"date"`
	IncludeExceptionalGrants bool                         `json:"includeExceptionalGrants"`
}

// PensionAtResponse is the answer to a PensionAtRequest.
type PensionAtResponse struct {
	Date                     time.Time       `json:"date"`
	Pension                  decimal.Decimal `json:"pension"`
	IncludeExceptionalGrants bool            `json:"includeExceptionalGrants"`
}

// TableResolutionResponse reports which tables govern a date.
type TableResolutionResponse struct {
	Date           time.Time       `json:"date"`
	BonusTable     string          `json:"bonusTable"`
	MinimumPension decimal.Decimal `json:"minimumPension"`
}

// TablesResponse lists the loaded tables and their data-quality issues.
type TablesResponse struct {
	Names       []string `json:"names"`
	Fingerprint string   `json:"fingerprint"`
	Issues      []string `json:"issues,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error      string           `json:"error"`
	Details    string           `json:"details,omitempty"`
	Field      string           `json:"field,omitempty"`
	Period     int              `json:"period,omitempty"`
	Applicable string           `json:"applicable,omitempty"`
	Fields     []FieldErrorBody `json:"fields,omitempty"`
}

// FieldErrorBody mirrors config.FieldError.
type FieldErrorBody struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}
