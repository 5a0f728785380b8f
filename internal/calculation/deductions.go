package calculation

import (
	"fmt"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/shopspring/decimal"
)

// deductionOutcome is the result of applying declared deductions to a
// sequence of entitlement buckets.
type deductionOutcome struct {
	// lines holds one item per declared category with the amount actually taken.
	lines []domain.LineItem
	// absorbed is the amount taken from each bucket, in bucket order.
	absorbed  []decimal.Decimal
	total     decimal.Decimal
	shortfall decimal.Decimal
}

// remaining returns what is left of bucket i after deductions.
func (o deductionOutcome) remaining(i int, bucket decimal.Decimal) decimal.Decimal {
	return bucket.Sub(o.absorbed[i])
}

// warning describes the uncovered part of the deductions, if any.
func (o deductionOutcome) warning() string {
	if !o.shortfall.IsPositive() {
		return ""
	}
	return fmt.Sprintf("الاستقطاعات تتجاوز المستحقات؛ تعذر خصم %s", o.shortfall.StringFixed(2))
}

// applyDeductions takes the declared deductions from the buckets in order
// until each bucket is exhausted. When the buckets cannot cover everything
// the amount actually taken is spread over the categories in proportion to
// what was declared; the last category absorbs the rounding.
func applyDeductions(declared []domain.Deduction, buckets ...decimal.Decimal) deductionOutcome {
	out := deductionOutcome{absorbed: make([]decimal.Decimal, len(buckets)), total: zero, shortfall: zero}
	for i := range out.absorbed {
		out.absorbed[i] = zero
	}

	requested := zero
	for _, d := range declared {
		requested = requested.Add(d.Amount)
	}
	if !requested.IsPositive() {
		return out
	}

	left := requested
	for i, b := range buckets {
		if !left.IsPositive() {
			break
		}
		if !b.IsPositive() {
			continue
		}
		take := decimal.Min(b, left)
		out.absorbed[i] = take
		left = left.Sub(take)
		out.total = out.total.Add(take)
	}
	out.shortfall = left

	if out.total.Equal(requested) {
		for _, d := range declared {
			out.lines = append(out.lines, domain.LineItem{Label: d.Category.Label(), Amount: d.Amount})
		}
		return out
	}

	distributed := zero
	for i, d := range declared {
		share := d.Amount.Mul(out.total).Div(requested).Round(2)
		if i == len(declared)-1 {
			share = out.total.Sub(distributed)
		}
		distributed = distributed.Add(share)
		out.lines = append(out.lines, domain.LineItem{Label: d.Category.Label(), Amount: share})
	}
	return out
}
