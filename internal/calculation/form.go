package calculation

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// arrearsPeriod is a parsed, month-aligned arrears period.
type arrearsPeriod struct {
	index      int
	start, end time.Time
	percentage decimal.Decimal
}

// settlementInput is the validated, typed view of a form.
type settlementInput struct {
	form        *domain.InsuranceDuesFormData
	law         domain.LawType
	variant     domain.LawVariant
	entitlement time.Time
	components  domain.PensionComponents

	death     time.Time
	birth     time.Time
	asOf      time.Time
	severance time.Time

	periods    []arrearsPeriod
	deductions []domain.Deduction
}

func (in *settlementInput) progressionInput() ProgressionInput {
	return ProgressionInput{
		LawType:         in.law,
		EntitlementDate: in.entitlement,
		Components:      in.components,
	}
}

func (in *settlementInput) hasVariable() bool {
	return in.components.Variable.IsPositive()
}

// parsePensionFields validates the law, entitlement and pension components.
func parsePensionFields(form *domain.InsuranceDuesFormData) (*settlementInput, error) {
	if form == nil {
		return nil, invalid("form", "is required")
	}
	law, err := domain.ParseLawType(string(form.LawType))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLaw, form.LawType)
	}
	variant, _ := law.Variant()

	entitlement, ok := dateutil.ParseYearMonth(form.EntitlementDate)
	if !ok {
		return nil, invalid("entitlement_date", "must be YYYY-MM, got %q", form.EntitlementDate)
	}
	if err := checkLawScope(law, entitlement); err != nil {
		return nil, err
	}

	in := &settlementInput{
		form:        form,
		law:         law,
		variant:     variant,
		entitlement: entitlement,
		components:  form.Components(),
	}
	if err := validateComponents(variant, in.components); err != nil {
		return nil, err
	}
	return in, nil
}

// validateComponents rejects negative amounts and components the law does
// not carry.
func validateComponents(variant domain.LawVariant, c domain.PensionComponents) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"normal_basic_pension", c.NormalBasic},
		{"injury_basic_pension", c.InjuryBasic},
		{"variable_pension", c.Variable},
		{"special_bonuses", c.SpecialBonuses},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return invalid(f.name, "must not be negative")
		}
	}

	var unsupported []string
	switch variant {
	case domain.Law108:
		unsupported = []string{"injury_basic_pension", "variable_pension"}
	case domain.Law112:
		unsupported = []string{"injury_basic_pension", "variable_pension", "special_bonuses"}
	case domain.Law148:
		unsupported = []string{"variable_pension", "special_bonuses"}
	}
	for _, name := range unsupported {
		for _, f := range fields {
			if f.name == name && !f.value.IsZero() {
				return invalid(name, "is not applicable to %s", variant)
			}
		}
	}
	return nil
}

// parseSettlementInput validates the whole form for a settlement.
func parseSettlementInput(form *domain.InsuranceDuesFormData, now time.Time) (*settlementInput, error) {
	in, err := parsePensionFields(form)
	if err != nil {
		return nil, err
	}

	if s := strings.TrimSpace(form.DeathDate); s != "" {
		d, ok := dateutil.ParseDate(s)
		if !ok {
			return nil, invalid("death_date", "is not a valid date: %q", s)
		}
		if dateutil.MonthStart(d).Before(in.entitlement) {
			return nil, invalid("death_date", "precedes the entitlement date")
		}
		in.death = d
	}
	if s := strings.TrimSpace(form.BirthDate); s != "" {
		d, ok := dateutil.ParseDate(s)
		if !ok {
			return nil, invalid("birth_date", "is not a valid date: %q", s)
		}
		in.birth = d
	}

	in.asOf = dateutil.MonthStart(now)
	if s := strings.TrimSpace(form.CalculationDate); s != "" {
		d, ok := parseMonth(s)
		if !ok {
			return nil, invalid("calculation_date", "must be YYYY-MM, got %q", s)
		}
		in.asOf = d
	}

	for _, d := range form.Deductions {
		if d.Amount.IsNegative() {
			return nil, invalid("deductions", "amount for %s must not be negative", d.Category)
		}
		if d.Enabled && d.Amount.IsPositive() {
			in.deductions = append(in.deductions, d)
		}
	}

	switch form.DuesType {
	case domain.DuesPeriodic:
		if in.asOf.Before(in.entitlement) {
			return nil, invalid("calculation_date", "precedes the entitlement date")
		}
	case domain.DuesInheritance:
		if in.death.IsZero() {
			return nil, invalid("death_date", "is required for inheritance dues")
		}
		if form.NoBeneficiaries {
			if in.birth.IsZero() {
				return nil, invalid("birth_date", "is required to compute the compensation")
			}
			if !in.birth.Before(in.death) {
				return nil, invalid("birth_date", "must precede the death date")
			}
			break
		}
		if err := in.parsePeriods(dateutil.MonthStart(in.death), "death date"); err != nil {
			return nil, err
		}
	case domain.DuesBeneficiaryArrears:
		if err := in.parsePeriods(in.entitlement, "entitlement date"); err != nil {
			return nil, err
		}
	case domain.DuesSeverance:
		s := strings.TrimSpace(form.SeveranceDate)
		if s == "" {
			return nil, invalid("severance_date", "is required for severance dues")
		}
		d, ok := dateutil.ParseDate(s)
		if !ok {
			return nil, invalid("severance_date", "is not a valid date: %q", s)
		}
		if !in.death.IsZero() && d.Before(in.death) {
			return nil, invalid("severance_date", "precedes the death date")
		}
		if d.Before(in.entitlement) {
			return nil, invalid("severance_date", "precedes the entitlement date")
		}
		in.severance = d
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDuesType, form.DuesType)
	}
	return in, nil
}

// parsePeriods checks the arrears periods: one to five of them, each
// starting no earlier than the month after the previous one ends, the first
// starting no earlier than lowerBound. Gaps between periods are allowed.
func (in *settlementInput) parsePeriods(lowerBound time.Time, boundName string) error {
	raw := in.form.ArrearsPeriods
	if len(raw) == 0 {
		return invalid("arrears_periods", "at least one period is required")
	}
	if len(raw) > domain.MaxArrearsPeriods {
		return invalid("arrears_periods", "at most %d periods are allowed", domain.MaxArrearsPeriods)
	}

	var prevEnd time.Time
	for i, p := range raw {
		n := i + 1
		start, ok := parseMonth(p.Start)
		if !ok {
			return invalidPeriod(n, "start", "is not a valid month: %q", p.Start)
		}
		end, ok := parseMonth(p.End)
		if !ok {
			return invalidPeriod(n, "end", "is not a valid month: %q", p.End)
		}
		if end.Before(start) {
			return invalidPeriod(n, "end", "precedes the period start")
		}
		if i == 0 && start.Before(lowerBound) {
			return invalidPeriod(n, "start", "precedes the %s (%s)", boundName, dateutil.MonthKey(lowerBound))
		}
		if i > 0 {
			earliest := prevEnd.AddDate(0, 1, 0)
			if start.Before(earliest) {
				return invalidPeriod(n, "start", "must be %s or later", dateutil.MonthKey(earliest))
			}
		}
		prevEnd = end
		in.periods = append(in.periods, arrearsPeriod{
			index:      n,
			start:      start,
			end:        end,
			percentage: domain.ClampPercentage(p.Percentage),
		})
	}
	return nil
}

// parseMonth accepts YYYY-MM or a day-precision date and returns the month start.
func parseMonth(s string) (time.Time, bool) {
	if t, ok := dateutil.ParseYearMonth(s); ok {
		return t, true
	}
	if t, ok := dateutil.ParseDate(s); ok {
		return dateutil.MonthStart(t), true
	}
	return time.Time{}, false
}
