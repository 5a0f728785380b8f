package calculation

import (
	"fmt"
	"testing"
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// testTables is a small authority table set:
//   - minimum pension 500 from 2016-07, 900 from 2019-07
//   - current bonuses 2014-07 10% (min 30), 2019-07 15% (min 150), 2022-04 13% (min 50)
//   - entitlements 1975-07..1992-06 use historical table (1)
//   - table (1) bonuses 1987-07 20% (min 5) and 1988-07 15% (min 5)
//   - table (2) has a 1987-07 row, referenced by table (1) steps
func testTables() *domain.TableSet {
	return domain.NewTableSet([]domain.PensionTable{
		{
			Name: domain.MinimumPensionTableName,
			Data: [][]string{
				{"التاريخ", "", "القيمة"},
				{"01/07/2016", "", "500"},
				{"01/07/2019", "", "900"},
			},
		},
		{
			Name: domain.CurrentBonusTableName,
			Data: [][]string{
				{"التاريخ", "النسبة", "", "الحد الأدنى", "الحد الأقصى"},
				{"01/07/2014", "10%", "", "30", ""},
				{"01/07/2019", "15%", "", "150", ""},
				{"01/04/2022", "13%", "", "50", ""},
			},
		},
		{
			Name: domain.AssignmentTableName,
			Data: [][]string{
				{"من", "إلى", "البيان"},
				{"01/07/1975", "30/06/1992", "تطبق قيم جدول رقم (1)"},
			},
		},
		{
			Name: domain.HistoricalTableName(1),
			Data: [][]string{
				{"01/07/1987", "20", "", "5", ""},
				{"01/07/1988", "15", "", "5", ""},
			},
		},
		{
			Name: domain.HistoricalTableName(2),
			Data: [][]string{
				{"01/07/1987", "10", "", "", ""},
			},
		},
	})
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func month(y int, m time.Month) time.Time {
	return dateutil.Date(y, m, 1)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	msg := fmt.Sprintf("want %s, got %s", want, got.String())
	if len(msgAndArgs) > 0 {
		if format, ok := msgAndArgs[0].(string); ok {
			msg += ": " + fmt.Sprintf(format, msgAndArgs[1:]...)
		}
	}
	assert.True(t, got.Equal(d(want)), msg)
}

// assertReconciled checks every step adds up and the dates never go backwards.
func assertReconciled(t *testing.T, data domain.ProgressionData) {
	t.Helper()
	for i, s := range data.Steps {
		sum := s.PensionBefore.Add(s.BonusAmount).Add(s.MinUplift)
		assert.True(t, s.PensionAfter.Sub(sum).Abs().LessThan(d("0.000001")),
			"step %d (%s) does not reconcile: %s + %s + %s != %s", i, s.Kind, s.PensionBefore, s.BonusAmount, s.MinUplift, s.PensionAfter)
		if i > 0 {
			assert.False(t, s.Date.Before(data.Steps[i-1].Date), "step %d precedes step %d", i, i-1)
			assert.True(t, s.PensionBefore.Equal(data.Steps[i-1].PensionAfter), "step %d does not continue from step %d", i, i-1)
		}
	}
}

func kinds(data domain.ProgressionData) []domain.StepKind {
	out := make([]domain.StepKind, len(data.Steps))
	for i, s := range data.Steps {
		out[i] = s.Kind
	}
	return out
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
