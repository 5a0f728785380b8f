package calculation

import (
	"time"

	"github.com/rgehrsitz/egpension/internal/authority"
	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ProgressionInput identifies one pension to replay.
type ProgressionInput struct {
	LawType         domain.LawType
	EntitlementDate time.Time
	Components      domain.PensionComponents
	// BonusTableName overrides assignment-table resolution when set.
	BonusTableName string
}

// lawContext carries everything a law calculator needs.
type lawContext struct {
	input   ProgressionInput
	variant domain.LawVariant
	bonus   authority.BonusSchedule
	minimum authority.MinimumSchedule
	set     *domain.TableSet
	logger  Logger
}

func (c *lawContext) entitlement() time.Time { return c.input.EntitlementDate }

// ComputeProgression replays the pension's history from entitlement. When a
// required table is missing the result is empty (no steps, zero summary) and
// callers treat that as ErrNoProgressionData.
func ComputeProgression(input ProgressionInput, set *domain.TableSet, logger Logger) domain.ProgressionData {
	if logger == nil {
		logger = NopLogger{}
	}
	input.EntitlementDate = dateutil.MonthStart(input.EntitlementDate)

	variant, ok := input.LawType.Variant()
	if !ok {
		logger.Warnf("progression: unknown law type %q", input.LawType)
		return emptyProgression(input, "")
	}

	tableName := input.BonusTableName
	if tableName == "" {
		tableName = authority.ResolveBonusTableName(input.EntitlementDate, set)
	}
	bonusTable, ok := set.Find(tableName)
	if !ok {
		logger.Warnf("progression: bonus table %q not found", tableName)
		return emptyProgression(input, tableName)
	}
	minTable, ok := set.Find(domain.MinimumPensionTableName)
	if !ok {
		logger.Warnf("progression: minimum pension table %q not found", domain.MinimumPensionTableName)
		return emptyProgression(input, tableName)
	}

	ctx := &lawContext{
		input:   input,
		variant: variant,
		bonus:   authority.ParseBonusSchedule(bonusTable),
		minimum: authority.ParseMinimumSchedule(minTable),
		set:     set,
		logger:  logger,
	}
	logger.Debugf("progression: law=%s entitlement=%s table=%q bonus rows=%d",
		input.LawType, dateutil.MonthKey(input.EntitlementDate), tableName, len(ctx.bonus.Rows))

	var steps []domain.ProgressionStep
	switch variant {
	case domain.Law79:
		steps = calculateLaw79(ctx)
	case domain.Law108:
		steps = calculateLaw108(ctx)
	case domain.Law112:
		steps = calculateLaw112(ctx)
	case domain.Law148:
		steps = calculateLaw148(ctx)
	}

	return domain.ProgressionData{
		Summary: summarize(input, tableName, steps),
		Steps:   steps,
	}
}

func emptyProgression(input ProgressionInput, tableName string) domain.ProgressionData {
	return domain.ProgressionData{
		Summary: domain.ProgressionSummary{
			LawType:         input.LawType,
			EntitlementDate: input.EntitlementDate,
			BonusTableName:  tableName,
		},
	}
}

// summarize derives the summary totals from the steps.
func summarize(input ProgressionInput, tableName string, steps []domain.ProgressionStep) domain.ProgressionSummary {
	s := domain.ProgressionSummary{
		LawType:         input.LawType,
		EntitlementDate: input.EntitlementDate,
		BonusTableName:  tableName,
	}
	for i, step := range steps {
		switch step.Kind {
		case domain.StepInitial:
			s.InitialPension = step.PensionAfter
		case domain.StepLaw30Addition:
			s.Law30Addition = s.Law30Addition.Add(step.BonusAmount)
		case domain.StepUplift:
			s.UpliftAmount = s.UpliftAmount.Add(step.BonusAmount)
		case domain.StepInjuryAddition:
			s.InjuryAddition = s.InjuryAddition.Add(step.BonusAmount)
		case domain.StepBonus:
			s.TotalBonuses = s.TotalBonuses.Add(step.BonusAmount)
		case domain.StepFixedIncrease, domain.StepSpecialUplift134:
			s.FixedIncreases = s.FixedIncreases.Add(step.BonusAmount)
		case domain.StepMinimumFloor:
			if step.Date.Equal(input.EntitlementDate) {
				s.InitialMinimumTopUp = s.InitialMinimumTopUp.Add(step.MinUplift)
			}
		}
		s.TotalMinimumUplifts = s.TotalMinimumUplifts.Add(step.MinUplift)
		if i == len(steps)-1 {
			s.CurrentPension = step.PensionAfter
		}
	}

	s.ExceptionalGrants = ApplicableExceptionalGrants(input.EntitlementDate, farFuture)
	s.ExceptionalGrantsTotal = sumGrants(s.ExceptionalGrants)
	return s
}

var farFuture = dateutil.Date(9999, 12, 1)

// initialEvent seeds the replay with the starting pension.
func initialEvent(entitlement time.Time) event {
	return event{date: entitlement, kind: domain.StepInitial, description: "المعاش عند الاستحقاق"}
}

// initialStep records the starting pension as the first step.
func initialStep(state *pensionState, ev event) domain.ProgressionStep {
	return domain.ProgressionStep{
		Date:          ev.date,
		Kind:          domain.StepInitial,
		Description:   ev.description,
		PensionBefore: zero,
		BonusAmount:   state.total(),
		MinUplift:     zero,
		PensionAfter:  state.total(),
	}
}

// initialFloorApplies reports whether the minimum floor is enforced at entitlement.
func initialFloorApplies(variant domain.LawVariant, entitlement time.Time) bool {
	return variant == domain.Law148 || !entitlement.Before(minimumFloorFrom)
}

func initialFloorEvent(entitlement time.Time) event {
	return event{date: entitlement, kind: domain.StepMinimumFloor, description: "استكمال الحد الأدنى للمعاش"}
}

func law30Event(entitlement time.Time, normalBasic decimal.Decimal) event {
	return event{
		date:        entitlement,
		kind:        domain.StepLaw30Addition,
		description: "زيادة القانون 30 لسنة 1992",
		amount:      law30Addition(normalBasic),
	}
}

func upliftEvent(entitlement time.Time) event {
	return event{date: upliftDate(entitlement), kind: domain.StepUplift, description: "زيادة مادة الرفع"}
}
