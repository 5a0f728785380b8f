package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/egpension/internal/calculation"
	"github.com/rgehrsitz/egpension/internal/config"
	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const periodicForm = `{
	"lawType": "148",
	"entitlementDate": "2021-01",
	"calculationDate": "2024-06",
	"normalBasicPension": 1000,
	"injuryBasicPension": 100,
	"duesType": "periodic",
	"deductions": [{"category": "alimony", "enabled": true, "amount": 250}]
}`

func setupTestServer(t *testing.T, opts Options) http.Handler {
	t.Helper()
	tables, err := config.NewInputParser().LoadTablesFromFile("../../test/testdata/tables.yaml")
	require.NoError(t, err)
	engine := calculation.NewCalculationEngine()
	engine.Now = func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }
	return NewRouter(NewHandler(engine, tables), opts)
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.RequestLog = false
	return opts
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

func TestHealth(t *testing.T) {
	h := setupTestServer(t, testOptions())
	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestProgression(t *testing.T) {
	h := setupTestServer(t, testOptions())
	rec := do(t, h, http.MethodPost, "/api/progression", periodicForm)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data domain.ProgressionData
	decodeResponse(t, rec, &data)
	require.NotEmpty(t, data.Steps)
	assert.Equal(t, domain.StepInitial, data.Steps[0].Kind)
	assert.Equal(t, domain.LawType148, data.Summary.LawType)
	last, _ := data.LastStep()
	assert.True(t, data.Summary.CurrentPension.Equal(last.PensionAfter))
	for i, s := range data.Steps {
		sum := s.PensionBefore.Add(s.BonusAmount).Add(s.MinUplift)
		assert.True(t, s.PensionAfter.Equal(sum), "step %d does not reconcile", i)
	}
}

func TestSettlement_Periodic(t *testing.T) {
	h := setupTestServer(t, testOptions())
	rec := do(t, h, http.MethodPost, "/api/settlement", periodicForm)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res domain.CalculationResultData
	decodeResponse(t, rec, &res)
	assert.Equal(t, domain.DuesPeriodic, res.DuesType)
	require.NotNil(t, res.Periodic)
	assert.True(t, res.Periodic.Pension.Equal(decimal.RequireFromString("2060.21")), res.Periodic.Pension.String())
	assert.True(t, res.TotalEntitlements.Equal(decimal.RequireFromString("2670.21")), res.TotalEntitlements.String())
	assert.True(t, res.NetPayable.Equal(decimal.RequireFromString("2414")), res.NetPayable.String())
}

func TestPensionAt(t *testing.T) {
	h := setupTestServer(t, testOptions())

	tests := []struct {
		name        string
		date        string
		exceptional bool
		want        string
	}{
		{"entitlement month", "2021-03", false, "1220"},
		{"day date", "15/06/2021", false, "1220"},
		{"after first bonus", "2022-01", false, "1378.6"},
		{"with exceptional grant", "2023-01", true, "1857.82"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"form": ` + periodicForm + `, "date": "` + tt.date + `", "includeExceptionalGrants": ` +
				map[bool]string{true: "true", false: "false"}[tt.exceptional] + `}`
			rec := do(t, h, http.MethodPost, "/api/pension-at", body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp PensionAtResponse
			decodeResponse(t, rec, &resp)
			assert.True(t, resp.Pension.Equal(decimal.RequireFromString(tt.want)), "got %s", resp.Pension)
		})
	}
}

func TestErrors(t *testing.T) {
	h := setupTestServer(t, testOptions())

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		check      func(t *testing.T, resp ErrorResponse)
	}{
		{
			name:       "malformed json",
			path:       "/api/settlement",
			body:       `{"lawType": `,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "field validation",
			path:       "/api/settlement",
			body:       `{"entitlementDate": "2021-01", "duesType": "periodic"}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, resp ErrorResponse) {
				require.NotEmpty(t, resp.Fields)
				assert.Equal(t, "law_type", resp.Fields[0].Field)
				assert.Equal(t, "required", resp.Fields[0].Rule)
			},
		},
		{
			name:       "law superseded",
			path:       "/api/progression",
			body:       `{"lawType": "79", "entitlementDate": "2021-01", "normalBasicPension": 500, "duesType": "periodic"}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, resp ErrorResponse) {
				assert.Equal(t, string(domain.LawType148), resp.Applicable)
			},
		},
		{
			name:       "cross-field validation",
			path:       "/api/settlement",
			body:       `{"lawType": "148", "entitlementDate": "2021-01", "normalBasicPension": 1000, "duesType": "inheritance"}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, resp ErrorResponse) {
				assert.NotEmpty(t, resp.Field)
			},
		},
		{
			name:       "pension-at bad date",
			path:       "/api/pension-at",
			body:       `{"form": ` + periodicForm + `, "date": "someday"}`,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			var resp ErrorResponse
			decodeResponse(t, rec, &resp)
			assert.NotEmpty(t, resp.Error)
			if tt.check != nil {
				tt.check(t, resp)
			}
		})
	}
}

func TestResolveTables(t *testing.T) {
	h := setupTestServer(t, testOptions())

	rec := do(t, h, http.MethodGet, "/api/tables/resolve?date=1990-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp TableResolutionResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, domain.HistoricalTableName(2), resp.BonusTable)
	assert.True(t, resp.MinimumPension.IsZero())

	rec = do(t, h, http.MethodGet, "/api/tables/resolve?date=01/01/2020", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeResponse(t, rec, &resp)
	assert.Equal(t, domain.CurrentBonusTableName, resp.BonusTable)
	assert.True(t, resp.MinimumPension.Equal(decimal.NewFromInt(900)))

	rec = do(t, h, http.MethodGet, "/api/tables/resolve", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTables(t *testing.T) {
	h := setupTestServer(t, testOptions())
	rec := do(t, h, http.MethodGet, "/api/tables/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TablesResponse
	decodeResponse(t, rec, &resp)
	assert.Len(t, resp.Names, 5)
	assert.NotEmpty(t, resp.Fingerprint)
	assert.Empty(t, resp.Issues)
}

func TestRateLimit(t *testing.T) {
	opts := testOptions()
	opts.RateLimit = 2
	h := setupTestServer(t, opts)

	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodGet, "/api/tables/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(t, h, http.MethodGet, "/api/tables/", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code, "health checks are not limited")
}

func TestCORSPreflight(t *testing.T) {
	h := setupTestServer(t, testOptions())
	req := httptest.NewRequest(http.MethodOptions, "/api/settlement", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
