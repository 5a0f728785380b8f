package calculation

import (
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
)

// calculateLaw108 replays a Law 108/1976 pension. The pension is a single
// channel (normal basic plus special bonuses) and every bonus is computed
// on the whole pension.
func calculateLaw108(ctx *lawContext) []domain.ProgressionStep {
	c := ctx.input.Components
	entitlement := ctx.entitlement()
	state := &pensionState{basic: c.NormalBasic.Add(c.SpecialBonuses)}

	events := []event{initialEvent(entitlement)}
	if law30Applies(entitlement) {
		events = append(events, law30Event(entitlement, c.NormalBasic))
	}
	events = append(events, upliftEvent(entitlement))
	if initialFloorApplies(ctx.variant, entitlement) {
		events = append(events, initialFloorEvent(entitlement))
	}
	events = append(events, bonusEvents(ctx.bonus, entitlement, time.Time{})...)

	refs := newReferenceIndex(ctx)
	return replayEvents(state, events, func(state *pensionState, ev event) (domain.ProgressionStep, bool) {
		switch ev.kind {
		case domain.StepInitial:
			return initialStep(state, ev), true
		case domain.StepLaw30Addition:
			return additiveStep(state, ev, ev.amount, zero), true
		case domain.StepUplift:
			amount := upliftAmount(domain.Law108, entitlement, state.total())
			if !amount.IsPositive() {
				return domain.ProgressionStep{}, false
			}
			return additiveStep(state, ev, amount, zero), true
		case domain.StepMinimumFloor:
			return minimumFloorStep(state, ev, ctx.minimum)
		case domain.StepBonus:
			step := bonusStep(state, ev, state.total(), ctx.minimum)
			step.References = refs.at(ev.bonus.Date)
			return step, true
		}
		return domain.ProgressionStep{}, false
	})
}
