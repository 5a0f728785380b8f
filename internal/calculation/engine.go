package calculation

import (
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates progression and settlement calculations
type CalculationEngine struct {
	Logger Logger
	// Now is the engine clock; it supplies the as-of month when a form
	// carries no calculation date.
	Now   func() time.Time
	Debug bool // Log every progression step

	cache *progressionCache
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
		Now:    func() time.Time { return time.Now().UTC() },
		cache:  newProgressionCache(),
	}
}

// SetLogger sets the logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// ResetCache drops every memoized progression.
func (ce *CalculationEngine) ResetCache() {
	ce.cache.reset()
}

func (ce *CalculationEngine) now() time.Time {
	if ce.Now == nil {
		return time.Now().UTC()
	}
	return ce.Now().UTC()
}

// Progression computes (or returns the memoized) progression for input.
func (ce *CalculationEngine) Progression(input ProgressionInput, set *domain.TableSet) domain.ProgressionData {
	input.EntitlementDate = dateutil.MonthStart(input.EntitlementDate)
	key := cacheKey(input, set)
	data := ce.cache.get(key, func() domain.ProgressionData {
		return ComputeProgression(input, set, ce.Logger)
	})
	if ce.Debug {
		for _, s := range data.Steps {
			ce.Logger.Debugf("step %s %-18s before=%s amount=%s min=%s after=%s",
				dateutil.DayKey(s.Date), s.Kind, s.PensionBefore.StringFixed(2),
				s.BonusAmount.StringFixed(2), s.MinUplift.StringFixed(2), s.PensionAfter.StringFixed(2))
		}
	}
	return data
}

// ProgressionForForm validates the pension fields of form and computes its
// progression. The dues-specific fields are not checked.
func (ce *CalculationEngine) ProgressionForForm(form *domain.InsuranceDuesFormData, set *domain.TableSet) (domain.ProgressionData, error) {
	in, err := parsePensionFields(form)
	if err != nil {
		return domain.ProgressionData{}, err
	}
	data := ce.Progression(in.progressionInput(), set)
	if data.IsEmpty() {
		return data, ErrNoProgressionData
	}
	return data, nil
}

// PensionAt returns the pension of input in force at target.
func (ce *CalculationEngine) PensionAt(target time.Time, input ProgressionInput, set *domain.TableSet, includeExceptional bool) (decimal.Decimal, error) {
	data := ce.Progression(input, set)
	if data.IsEmpty() {
		return decimal.Zero, ErrNoProgressionData
	}
	return PensionAt(target, data, includeExceptional), nil
}

// ValidateForm applies the cross-field rules Calculate enforces (law scope,
// date ordering, period continuity) without computing anything.
func (ce *CalculationEngine) ValidateForm(form *domain.InsuranceDuesFormData) error {
	_, err := parseSettlementInput(form, ce.now())
	return err
}
