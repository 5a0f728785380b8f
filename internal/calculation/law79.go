package calculation

import (
	"time"

	"github.com/rgehrsitz/egpension/internal/authority"
	"github.com/rgehrsitz/egpension/internal/domain"
)

// calculateLaw79 replays a Law 79/1975 pension. The pension runs in two
// channels: the basic channel (normal + injury) carries the uplift, the Law
// 30 addition and floor top-ups; the second channel holds the variable
// pension and special bonuses. Bonuses before April 2011 are computed on
// the basic channel only, later ones on the whole pension.
func calculateLaw79(ctx *lawContext) []domain.ProgressionStep {
	c := ctx.input.Components
	entitlement := ctx.entitlement()
	state := &pensionState{
		basic:     c.NormalBasic.Add(c.InjuryBasic),
		secondary: c.Variable.Add(c.SpecialBonuses),
	}

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
			amount := upliftAmount(domain.Law79, entitlement, state.total())
			if !amount.IsPositive() {
				return domain.ProgressionStep{}, false
			}
			return additiveStep(state, ev, amount, zero), true
		case domain.StepMinimumFloor:
			return minimumFloorStep(state, ev, ctx.minimum)
		case domain.StepBonus:
			base := state.total()
			if ev.bonus.Date.Before(law79TotalBaseFrom) {
				base = state.basic
			}
			step := bonusStep(state, ev, base, ctx.minimum)
			step.References = refs.at(ev.bonus.Date)
			return step, true
		}
		return domain.ProgressionStep{}, false
	})
}

// referenceIndex finds the other historical tables that changed the pension
// in the same month as a bonus step. It is empty unless the entitlement
// predates May 2008.
type referenceIndex struct {
	tables map[int]authority.BonusSchedule
	order  []int
}

func newReferenceIndex(ctx *lawContext) referenceIndex {
	idx := referenceIndex{tables: map[int]authority.BonusSchedule{}}
	if !ctx.entitlement().Before(referencesBefore) {
		return idx
	}
	for _, n := range authority.HistoricalTableNumbers(ctx.set) {
		name := domain.HistoricalTableName(n)
		if name == ctx.bonus.TableName {
			continue
		}
		t, ok := ctx.set.Find(name)
		if !ok {
			continue
		}
		idx.tables[n] = authority.ParseBonusSchedule(t)
		idx.order = append(idx.order, n)
	}
	return idx
}

func (r referenceIndex) at(date time.Time) []int {
	var out []int
	for _, n := range r.order {
		row, ok := r.tables[n].At(date)
		if ok && row.Percentage.IsPositive() {
			out = append(out, n)
		}
	}
	return out
}
