package calculation

import (
	"sort"
	"time"

	"github.com/rgehrsitz/egpension/internal/authority"
	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/shopspring/decimal"
)

// event is one dated change to a pension before it is applied. Each law
// builds its own event list; replayEvents applies them in order.
type event struct {
	date        time.Time
	kind        domain.StepKind
	description string
	// amount is the additive delta or, for absolute-floor kinds, the floor.
	amount decimal.Decimal
	// bonus is set for bonus events.
	bonus *authority.BonusRow
}

// Same-date events apply in this order.
var kindRank = map[domain.StepKind]int{
	domain.StepInitial:          0,
	domain.StepLaw30Addition:    1,
	domain.StepFixedIncrease:    2,
	domain.StepUplift:           3,
	domain.StepMinimumFloor:     4,
	domain.StepInjuryAddition:   5,
	domain.StepBonus:            6,
	domain.StepSpecialUplift134: 7,
}

func sortEvents(events []event) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].date.Equal(events[j].date) {
			return events[i].date.Before(events[j].date)
		}
		return kindRank[events[i].kind] < kindRank[events[j].kind]
	})
}

// pensionState is the running pension during replay. Only Law 79 keeps a
// second channel; other laws leave secondary at zero.
type pensionState struct {
	basic     decimal.Decimal
	secondary decimal.Decimal
}

func (s *pensionState) total() decimal.Decimal {
	return s.basic.Add(s.secondary)
}

// applyFunc applies one event to state. It returns false when the event
// produced no change worth recording.
type applyFunc func(state *pensionState, ev event) (domain.ProgressionStep, bool)

// replayEvents sorts events and folds them into state, collecting the steps.
func replayEvents(state *pensionState, events []event, apply applyFunc) []domain.ProgressionStep {
	sortEvents(events)
	steps := make([]domain.ProgressionStep, 0, len(events))
	for _, ev := range events {
		if step, ok := apply(state, ev); ok {
			steps = append(steps, step)
		}
	}
	return steps
}

// additiveStep adds delta and topUp to the basic channel and records the step.
func additiveStep(state *pensionState, ev event, delta, topUp decimal.Decimal) domain.ProgressionStep {
	before := state.total()
	state.basic = state.basic.Add(delta).Add(topUp)
	step := domain.ProgressionStep{
		Date:          ev.date,
		Kind:          ev.kind,
		Description:   ev.description,
		PensionBefore: before,
		BonusAmount:   delta,
		MinUplift:     topUp,
		PensionAfter:  state.total(),
	}
	if ev.bonus != nil {
		pct := ev.bonus.Percentage
		step.BonusPercentage = &pct
	}
	return step
}

// floorStep raises the pension to an absolute value, recorded as a delta so
// that PensionAfter = PensionBefore + BonusAmount still holds. A floor at or
// below the current pension is skipped.
func floorStep(state *pensionState, ev event) (domain.ProgressionStep, bool) {
	delta := ev.amount.Sub(state.total())
	if !delta.IsPositive() {
		return domain.ProgressionStep{}, false
	}
	return additiveStep(state, ev, delta, zero), true
}

// minimumFloorStep tops the pension up to the floor in force at the event date.
func minimumFloorStep(state *pensionState, ev event, minimum authority.MinimumSchedule) (domain.ProgressionStep, bool) {
	topUp := minimumTopUp(state.total(), authority.ResolveMinimumPension(ev.date, minimum))
	if !topUp.IsPositive() {
		return domain.ProgressionStep{}, false
	}
	return additiveStep(state, ev, zero, topUp), true
}

// bonusStep applies a periodic bonus computed on base, then enforces the
// minimum floor for bonuses dated on or after the floor reform.
func bonusStep(state *pensionState, ev event, base decimal.Decimal, minimum authority.MinimumSchedule) domain.ProgressionStep {
	row := ev.bonus
	amount := clamp(base.Mul(row.Percentage).Div(hundred), row.MinAmount, row.MaxAmount).Round(2)
	topUp := zero
	if !row.Date.Before(minimumFloorFrom) {
		floor := authority.ResolveMinimumPension(row.Date, minimum)
		topUp = minimumTopUp(state.total().Add(amount), floor)
	}
	return additiveStep(state, ev, amount, topUp)
}

// bonusEvents turns the schedule rows that reach entitlement into events.
// Rows dated before notBefore are ignored.
func bonusEvents(schedule authority.BonusSchedule, entitlement, notBefore time.Time) []event {
	var events []event
	rows := schedule.From(notBefore)
	for i := range rows {
		row := rows[i]
		date, ok := bonusApplies(row.Date, entitlement)
		if !ok {
			continue
		}
		events = append(events, event{
			date:        date,
			kind:        domain.StepBonus,
			description: "علاوة دورية " + row.Date.Format("01/2006"),
			bonus:       &row,
		})
	}
	return events
}
