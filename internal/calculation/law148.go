package calculation

import (
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
)

// calculateLaw148 replays a Law 148/2019 pension. The normal basic pension
// takes the fixed uplift and the minimum floor at entitlement; the injury
// pension is added afterwards as its own step.
func calculateLaw148(ctx *lawContext) []domain.ProgressionStep {
	c := ctx.input.Components
	entitlement := ctx.entitlement()
	state := &pensionState{basic: c.NormalBasic}

	events := []event{
		initialEvent(entitlement),
		{date: entitlement, kind: domain.StepUplift, description: "زيادة مادة الرفع", amount: law148Uplift(c.NormalBasic)},
		initialFloorEvent(entitlement),
	}
	if c.InjuryBasic.IsPositive() {
		events = append(events, event{
			date:        entitlement,
			kind:        domain.StepInjuryAddition,
			description: "إضافة معاش الإصابة",
			amount:      c.InjuryBasic,
		})
	}
	events = append(events, bonusEvents(ctx.bonus, entitlement, time.Time{})...)

	return replayEvents(state, events, func(state *pensionState, ev event) (domain.ProgressionStep, bool) {
		switch ev.kind {
		case domain.StepInitial:
			return initialStep(state, ev), true
		case domain.StepUplift, domain.StepInjuryAddition:
			if !ev.amount.IsPositive() {
				return domain.ProgressionStep{}, false
			}
			return additiveStep(state, ev, ev.amount, zero), true
		case domain.StepMinimumFloor:
			return minimumFloorStep(state, ev, ctx.minimum)
		case domain.StepBonus:
			return bonusStep(state, ev, state.total(), ctx.minimum), true
		}
		return domain.ProgressionStep{}, false
	})
}
