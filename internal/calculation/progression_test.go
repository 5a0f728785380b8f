package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/egpension/internal/authority"
	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeProgression_Law148(t *testing.T) {
	data := ComputeProgression(ProgressionInput{
		LawType:         domain.LawType148,
		EntitlementDate: month(2021, time.January),
		Components:      domain.PensionComponents{NormalBasic: d("1000"), InjuryBasic: d("100")},
	}, testTables(), nil)

	require.False(t, data.IsEmpty())
	assertReconciled(t, data)
	assert.Equal(t, []domain.StepKind{
		domain.StepInitial, domain.StepUplift, domain.StepInjuryAddition, domain.StepBonus,
	}, kinds(data))

	assertDecimal(t, "1000", data.Steps[0].PensionAfter)
	assert.True(t, data.Steps[0].PensionBefore.IsZero())
	assertDecimal(t, "120", data.Steps[1].BonusAmount, "uplift is 450 - 1000*0.33")
	assertDecimal(t, "1220", data.Steps[2].PensionAfter)
	assertDecimal(t, "158.6", data.Steps[3].BonusAmount)
	assertDecimal(t, "13", *data.Steps[3].BonusPercentage)

	s := data.Summary
	assert.Equal(t, domain.CurrentBonusTableName, s.BonusTableName)
	assertDecimal(t, "1000", s.InitialPension)
	assertDecimal(t, "120", s.UpliftAmount)
	assertDecimal(t, "100", s.InjuryAddition)
	assertDecimal(t, "158.6", s.TotalBonuses)
	assertDecimal(t, "1378.6", s.CurrentPension)
	assert.Len(t, s.ExceptionalGrants, 2)
	assertDecimal(t, "600", s.ExceptionalGrantsTotal)
}

func TestComputeProgression_Law148MinimumFloor(t *testing.T) {
	data := ComputeProgression(ProgressionInput{
		LawType:         domain.LawType148,
		EntitlementDate: month(2020, time.March),
		Components:      domain.PensionComponents{NormalBasic: d("300")},
	}, testTables(), nil)

	assertReconciled(t, data)
	assert.Equal(t, []domain.StepKind{
		domain.StepInitial, domain.StepUplift, domain.StepMinimumFloor, domain.StepBonus,
	}, kinds(data))
	assertDecimal(t, "351", data.Steps[1].BonusAmount)
	assertDecimal(t, "249", data.Steps[2].MinUplift)
	assertDecimal(t, "900", data.Steps[2].PensionAfter)
	assertDecimal(t, "249", data.Summary.InitialMinimumTopUp)
	assertDecimal(t, "1017", data.Summary.CurrentPension)
}

func TestComputeProgression_BonusExceptionWindow(t *testing.T) {
	tests := []struct {
		name        string
		entitlement time.Time
		wantBonus   bool
	}{
		{"inside window", month(2022, time.May), true},
		{"window end inclusive", month(2022, time.June), true},
		{"after window", month(2022, time.July), false},
		{"same month as bonus", month(2022, time.April), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := ComputeProgression(ProgressionInput{
				LawType:         domain.LawType148,
				EntitlementDate: tt.entitlement,
				Components:      domain.PensionComponents{NormalBasic: d("1000")},
			}, testTables(), nil)
			assertReconciled(t, data)

			last, ok := data.LastStep()
			require.True(t, ok)
			if !tt.wantBonus {
				assert.NotEqual(t, domain.StepBonus, last.Kind)
				return
			}
			assert.Equal(t, domain.StepBonus, last.Kind)
			assert.True(t, last.Date.Equal(tt.entitlement), "exception bonus is dated at entitlement")
			assertDecimal(t, "145.6", last.BonusAmount)
		})
	}
}

func TestComputeProgression_Law112FixedTrack(t *testing.T) {
	data := ComputeProgression(ProgressionInput{
		LawType:         domain.LawType112,
		EntitlementDate: month(1985, time.January),
	}, testTables(), nil)

	require.False(t, data.IsEmpty())
	assertReconciled(t, data)
	assertDecimal(t, "12", data.Steps[0].PensionAfter)

	var fixedIncreases int
	for _, s := range data.Steps {
		if s.Kind == domain.StepFixedIncrease {
			fixedIncreases++
		}
	}
	assert.Equal(t, 9, fixedIncreases)

	uplift := data.Steps[10]
	assert.Equal(t, domain.StepUplift, uplift.Kind)
	assert.Equal(t, "2010-07", dateutil.MonthKey(uplift.Date))
	assertDecimal(t, "80", uplift.PensionBefore)
	assertDecimal(t, "25", uplift.BonusAmount)

	last, _ := data.LastStep()
	assert.Equal(t, domain.StepSpecialUplift134, last.Kind)
	assertDecimal(t, "323", last.PensionAfter)
	assertDecimal(t, "218", last.BonusAmount)
}

func TestComputeProgression_SadatUsesOwnTable(t *testing.T) {
	data := ComputeProgression(ProgressionInput{
		LawType:         domain.LawTypeSadat,
		EntitlementDate: month(1985, time.January),
	}, testTables(), nil)

	assertReconciled(t, data)
	assertDecimal(t, "10", data.Steps[0].PensionAfter)
	assert.Equal(t, domain.StepFixedIncrease, data.Steps[1].Kind)
	assert.Equal(t, "1987-07", dateutil.MonthKey(data.Steps[1].Date))
	assertDecimal(t, "14", data.Steps[1].PensionAfter)
}

func TestComputeProgression_Law79Channels(t *testing.T) {
	data := ComputeProgression(ProgressionInput{
		LawType:         domain.LawType79,
		EntitlementDate: month(1986, time.January),
		Components:      domain.PensionComponents{NormalBasic: d("100"), Variable: d("20")},
	}, testTables(), nil)

	assertReconciled(t, data)
	assert.Equal(t, domain.HistoricalTableName(1), data.Summary.BonusTableName)
	assert.Equal(t, []domain.StepKind{
		domain.StepInitial, domain.StepBonus, domain.StepBonus, domain.StepUplift,
	}, kinds(data))

	assertDecimal(t, "120", data.Steps[0].PensionAfter)
	assertDecimal(t, "20", data.Steps[1].BonusAmount, "pre-2011 bonus uses the basic channel only")
	assert.Equal(t, []int{2}, data.Steps[1].References)
	assertDecimal(t, "18", data.Steps[2].BonusAmount)
	assert.Empty(t, data.Steps[2].References)
	assertDecimal(t, "147.86", data.Steps[3].BonusAmount, "uplift is 200 - 158*0.33")
	assertDecimal(t, "305.86", data.Summary.CurrentPension)
}

func TestComputeProgression_Law108(t *testing.T) {
	data := ComputeProgression(ProgressionInput{
		LawType:         domain.LawType108,
		EntitlementDate: month(2015, time.January),
		Components:      domain.PensionComponents{NormalBasic: d("400"), SpecialBonuses: d("50")},
	}, testTables(), nil)

	assertReconciled(t, data)
	assert.Equal(t, []domain.StepKind{
		domain.StepInitial, domain.StepLaw30Addition, domain.StepUplift, domain.StepBonus, domain.StepBonus,
	}, kinds(data))
	assertDecimal(t, "35", data.Steps[1].BonusAmount, "Law 30 addition is capped at 35")
	assertDecimal(t, "139.95", data.Steps[2].BonusAmount)

	bonus2019 := data.Steps[3]
	assertDecimal(t, "150", bonus2019.BonusAmount, "clamped up to the minimum amount")
	assertDecimal(t, "125.05", bonus2019.MinUplift, "topped up to the 900 floor")
	assertDecimal(t, "900", bonus2019.PensionAfter)
	assertDecimal(t, "1017", data.Summary.CurrentPension)
	assertDecimal(t, "35", data.Summary.Law30Addition)
}

func TestComputeProgression_MissingTables(t *testing.T) {
	set := domain.NewTableSet([]domain.PensionTable{{Name: domain.CurrentBonusTableName}})
	data := ComputeProgression(ProgressionInput{
		LawType:         domain.LawType148,
		EntitlementDate: month(2021, time.January),
		Components:      domain.PensionComponents{NormalBasic: d("1000")},
	}, set, nil)

	assert.True(t, data.IsEmpty())
	assert.True(t, data.Summary.CurrentPension.IsZero())
}

func TestComputeProgression_Idempotent(t *testing.T) {
	input := ProgressionInput{
		LawType:         domain.LawType108,
		EntitlementDate: month(2015, time.January),
		Components:      domain.PensionComponents{NormalBasic: d("400")},
	}
	a := ComputeProgression(input, testTables(), nil)
	b := ComputeProgression(input, testTables(), nil)
	require.Equal(t, len(a.Steps), len(b.Steps))
	for i := range a.Steps {
		assert.True(t, a.Steps[i].PensionAfter.Equal(b.Steps[i].PensionAfter))
	}
}

func TestBonusStep_Clamp(t *testing.T) {
	tests := []struct {
		name       string
		pct        string
		min, max   string
		wantAmount string
	}{
		{"below minimum", "10", "50", "80", "50"},
		{"above maximum", "30", "50", "80", "80"},
		{"within range", "20", "50", "80", "60"},
		{"uncapped", "50", "0", "0", "150"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &pensionState{basic: d("300")}
			ev := event{
				date: month(2015, time.July),
				kind: domain.StepBonus,
				bonus: &authority.BonusRow{
					Date: month(2015, time.July), Percentage: d(tt.pct), MinAmount: d(tt.min), MaxAmount: d(tt.max),
				},
			}
			step := bonusStep(state, ev, state.total(), authority.MinimumSchedule{})
			assertDecimal(t, tt.wantAmount, step.BonusAmount)
			assert.True(t, step.MinUplift.IsZero())
		})
	}
}

func TestPensionAt(t *testing.T) {
	data := ComputeProgression(ProgressionInput{
		LawType:         domain.LawType148,
		EntitlementDate: month(2021, time.January),
		Components:      domain.PensionComponents{NormalBasic: d("1000"), InjuryBasic: d("100")},
	}, testTables(), nil)

	assert.True(t, PensionAt(month(2020, time.December), data, true).IsZero())
	assertDecimal(t, "1220", PensionAt(month(2022, time.March), data, false))
	assertDecimal(t, "1378.6", PensionAt(month(2022, time.April), data, false))
	assertDecimal(t, "1678.6", PensionAt(month(2022, time.November), data, true))
	assertDecimal(t, "1978.6", PensionAt(month(2024, time.January), data, true))
}

func TestBonusEvents_NotBefore(t *testing.T) {
	table, ok := testTables().Find(domain.CurrentBonusTableName)
	require.True(t, ok)
	schedule := authority.ParseBonusSchedule(table)
	entitlement := month(2010, time.January)

	all := bonusEvents(schedule, entitlement, time.Time{})
	require.Len(t, all, 3)

	from := bonusEvents(schedule, entitlement, dateutil.Date(2019, 7, 1))
	require.Len(t, from, 2, "a bonus dated on the bound still applies")
	assert.Equal(t, "2019-07", dateutil.MonthKey(from[0].date))
	assert.Equal(t, "2022-04", dateutil.MonthKey(from[1].date))
	assert.Equal(t, domain.StepBonus, from[0].kind)
}
