package calculation

import (
	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// arrearsTotals sums the arrears buckets over every period.
type arrearsTotals struct {
	pension     decimal.Decimal
	grant       decimal.Decimal
	exceptional decimal.Decimal
	commission  decimal.Decimal
}

func (t arrearsTotals) gross() decimal.Decimal {
	return t.pension.Add(t.grant).Add(t.exceptional)
}

// accumulateArrears walks every month of every period. Each month owes the
// pension in force (without exceptional grants), the monthly grant and the
// applicable exceptional grants, all scaled by the period's percentage,
// and is charged the monthly disbursement commission.
func accumulateArrears(in *settlementInput, data domain.ProgressionData) ([]domain.PeriodBreakdown, arrearsTotals) {
	totals := arrearsTotals{pension: zero, grant: zero, exceptional: zero, commission: zero}
	breakdowns := make([]domain.PeriodBreakdown, 0, len(in.periods))

	for _, p := range in.periods {
		factor := p.percentage.Div(hundred)
		b := domain.PeriodBreakdown{
			Index:                   p.index,
			Start:                   p.start,
			End:                     p.end,
			Percentage:              p.percentage,
			PensionArrears:          zero,
			MonthlyGrantArrears:     zero,
			ExceptionalGrantArrears: zero,
			Commission:              zero,
			Total:                   zero,
		}
		for _, month := range dateutil.Months(p.start, p.end) {
			pension := PensionAt(month, data, false).Mul(factor).Round(2)
			grant := monthlyGrant(month).Mul(factor).Round(2)
			exceptional := sumGrants(ApplicableExceptionalGrants(in.entitlement, month)).Mul(factor).Round(2)
			disbursed := pension.Add(grant).Add(exceptional)

			b.Months++
			b.PensionArrears = b.PensionArrears.Add(pension)
			b.MonthlyGrantArrears = b.MonthlyGrantArrears.Add(grant)
			b.ExceptionalGrantArrears = b.ExceptionalGrantArrears.Add(exceptional)
			b.Commission = b.Commission.Add(monthlyCommission(month, in.variant, in.hasVariable(), disbursed))
		}
		b.Total = b.PensionArrears.Add(b.MonthlyGrantArrears).Add(b.ExceptionalGrantArrears)

		totals.pension = totals.pension.Add(b.PensionArrears)
		totals.grant = totals.grant.Add(b.MonthlyGrantArrears)
		totals.exceptional = totals.exceptional.Add(b.ExceptionalGrantArrears)
		totals.commission = totals.commission.Add(b.Commission)
		breakdowns = append(breakdowns, b)
	}
	return breakdowns, totals
}
