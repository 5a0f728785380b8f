package authority

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
)

var tableRefPattern = regexp.MustCompile(`جدول رقم\s*\(\s*(\d+)\s*\)`)

// Assignment table columns: start date, end date, description.
const (
	assignColStart = 0
	assignColEnd   = 1
	assignColDesc  = 2
)

// ResolveBonusTableName picks the bonus table that was authoritative at
// target. Assignment rows are scanned in order and the first row whose
// [start, end] range (end inclusive through the end of day) contains target
// wins. The current bonus table is returned when the assignment table is
// absent, no row matches, or the matching description names no table.
func ResolveBonusTableName(target time.Time, set *domain.TableSet) string {
	assignments, ok := set.Find(domain.AssignmentTableName)
	if !ok {
		return domain.CurrentBonusTableName
	}
	for _, row := range assignments.Data {
		start, ok := dateutil.ParseDate(cell(row, assignColStart))
		if !ok {
			continue
		}
		end, ok := dateutil.ParseDate(cell(row, assignColEnd))
		if !ok {
			continue
		}
		if target.Before(start) || target.After(dateutil.EndOfDay(end)) {
			continue
		}
		if n, ok := TableNumber(cell(row, assignColDesc)); ok {
			return domain.HistoricalTableName(n)
		}
		return domain.CurrentBonusTableName
	}
	return domain.CurrentBonusTableName
}

// TableNumber extracts N from free text containing "جدول رقم (N)".
func TableNumber(text string) (int, bool) {
	m := tableRefPattern.FindStringSubmatch(dateutil.ConvertArabicNumerals(text))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// HistoricalTableNumbers lists the numbers of the dated reference tables in
// the set, ascending.
func HistoricalTableNumbers(set *domain.TableSet) []int {
	var nums []int
	if set == nil {
		return nums
	}
	for _, t := range set.Tables {
		n, ok := TableNumber(t.Name)
		if !ok || domain.HistoricalTableName(n) != t.Name {
			continue
		}
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// OrderingIssue describes a table whose dated rows are not ascending.
type OrderingIssue struct {
	Table string
	Row   int
	Date  time.Time
	Prev  time.Time
}

func (o OrderingIssue) String() string {
	return fmt.Sprintf("%s: row %d dated %s precedes previous row dated %s",
		o.Table, o.Row+1, dateutil.DayKey(o.Date), dateutil.DayKey(o.Prev))
}

// CheckOrdering reports rows of a dated table (first column a date) that are
// earlier than the row before them. Consumers sort on load, so an issue is a
// data-quality warning rather than a computation error.
func CheckOrdering(table *domain.PensionTable) []OrderingIssue {
	var issues []OrderingIssue
	var prev time.Time
	for i, row := range table.Data {
		d, ok := dateutil.ParseDate(cell(row, 0))
		if !ok {
			continue
		}
		if !prev.IsZero() && d.Before(prev) {
			issues = append(issues, OrderingIssue{Table: table.Name, Row: i, Date: d, Prev: prev})
		}
		prev = d
	}
	return issues
}

// CheckAssignmentOverlaps reports assignment rows whose ranges overlap an
// earlier row. First match wins at resolution time, so overlaps silently
// shadow later rows.
func CheckAssignmentOverlaps(set *domain.TableSet) []string {
	assignments, ok := set.Find(domain.AssignmentTableName)
	if !ok {
		return nil
	}
	type span struct {
		row        int
		start, end time.Time
	}
	var spans []span
	var issues []string
	for i, row := range assignments.Data {
		start, ok1 := dateutil.ParseDate(cell(row, assignColStart))
		end, ok2 := dateutil.ParseDate(cell(row, assignColEnd))
		if !ok1 || !ok2 {
			continue
		}
		for _, s := range spans {
			if !start.After(s.end) && !end.Before(s.start) {
				issues = append(issues, fmt.Sprintf("%s: row %d overlaps row %d", assignments.Name, i+1, s.row+1))
			}
		}
		spans = append(spans, span{row: i, start: start, end: end})
	}
	return issues
}
