package calculation

import (
	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var (
	monthsPerYear         = decimal.NewFromInt(12)
	severanceFloorLaw148  = decimal.NewFromInt(500)
	severanceFloorClassic = decimal.NewFromInt(200)
)

// calculateSeverance settles the one-time grant paid when a beneficiary's
// share is cut off: twelve months of the pension in force at the severance
// date times the beneficiary's share (capped at 66.67%), with a floor of
// 500 from 2020 and 200 before. Law 112 and Sadat pensions owe nothing for
// severances before 2020.
func (ce *CalculationEngine) calculateSeverance(in *settlementInput, data domain.ProgressionData, r *result) {
	if in.variant == domain.Law112 && in.severance.Before(law148Effective) {
		r.entitle(labelSeveranceGrant, zero)
		r.note("no severance grant is owed for " + in.law.DisplayName() + " before 2020")
		return
	}

	pension := PensionAt(dateutil.MonthStart(in.severance), data, false)
	grant := SeveranceGrant(pension, in.form.SeverancePercentage, !in.severance.Before(law148Effective))
	r.entitle(labelSeveranceGrant, grant)

	o := applyDeductions(in.deductions, grant)
	r.applyDeductions(o)
	r.deduct(labelSeveranceCommission, calculateCommission(o.remaining(0, grant), in.severance))
}

// SeveranceGrant is pension * min(pct, 66.67)/100 * 12, floored at 500 under
// Law 148 rules or 200 before.
func SeveranceGrant(pension, percentage decimal.Decimal, law148Rules bool) decimal.Decimal {
	pct := decimal.Min(domain.ClampPercentage(percentage), severanceMaxPercent)
	grant := pension.Mul(pct).Div(hundred).Mul(monthsPerYear).Round(2)
	floor := severanceFloorClassic
	if law148Rules {
		floor = severanceFloorLaw148
	}
	return decimal.Max(grant, floor)
}
