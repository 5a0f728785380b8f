package calculation

import (
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	disbursedShare     = decimal.NewFromFloat(0.998)
	grantCommissionPct = decimal.NewFromFloat(0.002)
	grantCommissionCap = decimal.NewFromInt(20)
	one                = decimal.NewFromInt(1)
	two                = decimal.NewFromInt(2)
)

// monthlyCommission is the disbursement commission on one month's arrears.
// From 2020 it is amount - floor(amount*0.998); before that it is a flat
// 1, except Law 79 variable pensions from February 2014 on, which pay 2.
// Nothing is charged on a zero amount.
func monthlyCommission(month time.Time, variant domain.LawVariant, hasVariable bool, amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return zero
	}
	if !month.Before(law148Effective) {
		return amount.Sub(amount.Mul(disbursedShare).Floor())
	}
	if variant == domain.Law79 && hasVariable && !month.Before(law79CommissionChange) {
		return two
	}
	return one
}

// calculateCommission is the commission on a lump-sum grant paid out for an
// event on date: 0.2% capped at 20 from 2020, a flat 1 before.
func calculateCommission(amount decimal.Decimal, date time.Time) decimal.Decimal {
	if !amount.IsPositive() {
		return zero
	}
	if !date.Before(law148Effective) {
		return decimal.Min(amount.Mul(grantCommissionPct), grantCommissionCap).Round(2)
	}
	return one
}
