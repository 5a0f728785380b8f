package calculation

import (
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/shopspring/decimal"
)

// PensionAt returns the pension in force at target: PensionAfter of the last
// step dated on or before target, zero when target precedes every step. With
// includeExceptional the exceptional grants applicable at target are added.
func PensionAt(target time.Time, data domain.ProgressionData, includeExceptional bool) decimal.Decimal {
	pension := zero
	for _, s := range data.Steps {
		if s.Date.After(target) {
			break
		}
		pension = s.PensionAfter
	}
	if includeExceptional {
		pension = pension.Add(sumGrants(ApplicableExceptionalGrants(data.Summary.EntitlementDate, target)))
	}
	return pension
}
