package calculation

import (
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// fixedRow is one row of a Law 112 / Sadat fixed-value table: the pension
// value in force from Date on.
type fixedRow struct {
	Date  time.Time
	Value decimal.Decimal
}

func fixed(y int, m time.Month, v int64) fixedRow {
	return fixedRow{Date: dateutil.Date(y, m, 1), Value: decimal.NewFromInt(v)}
}

// Law 112/1980 fixed pension values before the 2010 uplift reform.
var law112FixedTable = []fixedRow{
	fixed(1981, time.July, 12),
	fixed(1991, time.June, 17),
	fixed(1994, time.July, 20),
	fixed(1997, time.July, 25),
	fixed(2000, time.July, 30),
	fixed(2003, time.July, 40),
	fixed(2005, time.July, 50),
	fixed(2007, time.July, 60),
	fixed(2008, time.July, 70),
	fixed(2009, time.July, 80),
}

// Sadat pension fixed values; same track as Law 112 with its own start.
var sadatFixedTable = []fixedRow{
	fixed(1980, time.July, 10),
	fixed(1987, time.July, 14),
	fixed(1991, time.June, 17),
	fixed(1994, time.July, 20),
	fixed(1997, time.July, 25),
	fixed(2000, time.July, 30),
	fixed(2003, time.July, 40),
	fixed(2005, time.July, 50),
	fixed(2007, time.July, 60),
	fixed(2008, time.July, 70),
	fixed(2009, time.July, 80),
}

// FixedPensionAt returns the fixed-table value in force at date: the value
// of the last row dated on or before it, or zero before the first row.
func FixedPensionAt(law domain.LawType, date time.Time) decimal.Decimal {
	value := zero
	for _, r := range fixedTable(law) {
		if r.Date.After(date) {
			break
		}
		value = r.Value
	}
	return value
}

func fixedTable(law domain.LawType) []fixedRow {
	if law.IsSadat() {
		return sadatFixedTable
	}
	return law112FixedTable
}

// calculateLaw112 replays a Law 112/1980 or Sadat pension. Entitlements
// before the 2010 reform follow the fixed-value track: the initial pension
// comes from the fixed table, later rows raise it as absolute floors, and
// only bonuses from July 2010 on apply. Later entitlements start from the
// normal basic pension.
func calculateLaw112(ctx *lawContext) []domain.ProgressionStep {
	law := ctx.input.LawType
	entitlement := ctx.entitlement()
	fixedTrack := entitlement.Before(upliftEffective)

	state := &pensionState{basic: ctx.input.Components.NormalBasic}
	events := []event{initialEvent(entitlement)}
	notBefore := time.Time{}
	if fixedTrack {
		state.basic = FixedPensionAt(law, entitlement)
		ctx.logger.Debugf("law 112: fixed track, initial %s", state.basic.StringFixed(2))
		notBefore = upliftEffective
		for _, r := range fixedTable(law) {
			if r.Date.After(entitlement) && r.Date.Before(upliftEffective) {
				events = append(events, event{
					date:        r.Date,
					kind:        domain.StepFixedIncrease,
					description: "زيادة بالجدول الثابت",
					amount:      r.Value,
				})
			}
		}
	}

	events = append(events, upliftEvent(entitlement))
	if initialFloorApplies(ctx.variant, entitlement) {
		events = append(events, initialFloorEvent(entitlement))
	}
	events = append(events, bonusEvents(ctx.bonus, entitlement, notBefore)...)
	if entitlement.Before(specialUplift134Date) {
		events = append(events, event{
			date:        specialUplift134Date,
			kind:        domain.StepSpecialUplift134,
			description: "رفع خاص بالقرار 134",
			amount:      specialUplift134,
		})
	}

	return replayEvents(state, events, func(state *pensionState, ev event) (domain.ProgressionStep, bool) {
		switch ev.kind {
		case domain.StepInitial:
			return initialStep(state, ev), true
		case domain.StepFixedIncrease, domain.StepSpecialUplift134:
			return floorStep(state, ev)
		case domain.StepUplift:
			return additiveStep(state, ev, upliftAmount(domain.Law112, entitlement, state.total()), zero), true
		case domain.StepMinimumFloor:
			return minimumFloorStep(state, ev, ctx.minimum)
		case domain.StepBonus:
			return bonusStep(state, ev, state.total(), ctx.minimum), true
		}
		return domain.ProgressionStep{}, false
	})
}
