// Package authority reads the authority tables (bonus schedules, minimum
// pension schedules and the table-assignment schedule) that the engine
// consumes read-only.
package authority

import (
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// BonusRow is one periodic bonus entry: date, percentage, min and max amount.
// A zero MaxAmount means the bonus is uncapped.
type BonusRow struct {
	Date       time.Time
	Percentage decimal.Decimal
	MinAmount  decimal.Decimal
	MaxAmount  decimal.Decimal
}

// BonusSchedule is a bonus table's rows sorted by date.
type BonusSchedule struct {
	TableName string
	Rows      []BonusRow
}

// MinimumRow is one minimum-pension entry.
type MinimumRow struct {
	Date  time.Time
	Value decimal.Decimal
}

// MinimumSchedule is the minimum pension table's rows sorted by date.
type MinimumSchedule struct {
	Rows []MinimumRow
}

// Bonus table columns: date, percentage, (unused), min amount, max amount.
const (
	bonusColDate = 0
	bonusColPct  = 1
	bonusColMin  = 3
	bonusColMax  = 4
)

// Minimum table columns: date, (unused), minimum value.
const (
	minColDate  = 0
	minColValue = 2
)

// ParseBonusSchedule converts a bonus table into a date-sorted schedule.
// Rows whose date cell does not parse (headers, blanks) are skipped.
func ParseBonusSchedule(table *domain.PensionTable) BonusSchedule {
	s := BonusSchedule{TableName: table.Name}
	for _, row := range table.Data {
		date, ok := dateutil.ParseDate(cell(row, bonusColDate))
		if !ok {
			continue
		}
		s.Rows = append(s.Rows, BonusRow{
			Date:       date,
			Percentage: ParseAmount(cell(row, bonusColPct)),
			MinAmount:  ParseAmount(cell(row, bonusColMin)),
			MaxAmount:  ParseAmount(cell(row, bonusColMax)),
		})
	}
	sort.SliceStable(s.Rows, func(i, j int) bool { return s.Rows[i].Date.Before(s.Rows[j].Date) })
	return s
}

// ParseMinimumSchedule converts the minimum pension table into a date-sorted schedule.
func ParseMinimumSchedule(table *domain.PensionTable) MinimumSchedule {
	var s MinimumSchedule
	for _, row := range table.Data {
		date, ok := dateutil.ParseDate(cell(row, minColDate))
		if !ok {
			continue
		}
		s.Rows = append(s.Rows, MinimumRow{Date: date, Value: ParseAmount(cell(row, minColValue))})
	}
	sort.SliceStable(s.Rows, func(i, j int) bool { return s.Rows[i].Date.Before(s.Rows[j].Date) })
	return s
}

// ResolveMinimumPension returns the value of the latest row effective on or
// before date, or zero when no row applies.
func ResolveMinimumPension(date time.Time, schedule MinimumSchedule) decimal.Decimal {
	for i := len(schedule.Rows) - 1; i >= 0; i-- {
		if !schedule.Rows[i].Date.After(date) {
			return schedule.Rows[i].Value
		}
	}
	return decimal.Zero
}

// From returns the bonus rows dated on or after t.
func (s BonusSchedule) From(t time.Time) []BonusRow {
	i := sort.Search(len(s.Rows), func(i int) bool { return !s.Rows[i].Date.Before(t) })
	return s.Rows[i:]
}

// At returns the row dated in the same month as t, if any.
func (s BonusSchedule) At(t time.Time) (BonusRow, bool) {
	key := dateutil.MonthKey(t)
	for _, r := range s.Rows {
		if dateutil.MonthKey(r.Date) == key {
			return r, true
		}
	}
	return BonusRow{}, false
}

// ParseAmount reads a numeric cell. Arabic digits, thousands separators, the
// Arabic decimal separator and a trailing percent sign are accepted. Anything
// unparseable is zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(dateutil.ConvertArabicNumerals(s))
	s = strings.NewReplacer(",", "", "٬", "", "٫", ".", "%", "", "٪", "", " ", "").Replace(s)
	if s == "" || s == "-" || s == "—" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
