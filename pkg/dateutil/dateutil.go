// Package dateutil parses the date formats found in authority tables and
// form inputs, including Arabic-Indic digits, and provides month arithmetic.
package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var arabicDigits = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
)

var (
	datePattern      = regexp.MustCompile(`^(\d{1,4})[/-](\d{1,2})[/-](\d{1,4})$`)
	yearMonthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	isoDayPattern    = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// ConvertArabicNumerals maps Arabic-Indic digits to ASCII digits. All other
// characters pass through unchanged.
func ConvertArabicNumerals(s string) string {
	if s == "" {
		return ""
	}
	return arabicDigits.Replace(s)
}

// ParseDate accepts D/M/Y or Y/M/D separated by '/' or '-'. The segment with
// four digits is taken as the year. The result is midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(ConvertArabicNumerals(s))
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	var ys, ms, ds string
	switch {
	case len(m[1]) == 4:
		ys, ms, ds = m[1], m[2], m[3]
	case len(m[3]) == 4:
		ds, ms, ys = m[1], m[2], m[3]
	default:
		return time.Time{}, false
	}

	year, err := strconv.Atoi(ys)
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(ms)
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(ds)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises 31/02 into March; reject instead.
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// ParseYearMonth parses a strict YYYY-MM value into the first of that month.
func ParseYearMonth(s string) (time.Time, bool) {
	s = strings.TrimSpace(ConvertArabicNumerals(s))
	m := yearMonthPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
}

// AddOneMonth increments a YYYY-MM key, rolling the year over after December.
// Malformed input yields "".
func AddOneMonth(yyyyMM string) string {
	t, ok := ParseYearMonth(yyyyMM)
	if !ok {
		return ""
	}
	return MonthKey(t.AddDate(0, 1, 0))
}

// FormatForDisplay turns YYYY-MM-DD into DD/MM/YYYY and YYYY-MM into MM/YYYY.
func FormatForDisplay(s string) string {
	if m := isoDayPattern.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s/%s/%s", m[3], m[2], m[1])
	}
	if m := yearMonthPattern.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s/%s", m[2], m[1])
	}
	return s
}

// MonthStart truncates t to the first day of its month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthKey formats t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// DayKey formats t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// EndOfDay returns the last millisecond of t's day, used for inclusive range ends.
func EndOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

// Months returns every month start in [from, to], both truncated to months.
func Months(from, to time.Time) []time.Time {
	start := MonthStart(from)
	end := MonthStart(to)
	var out []time.Time
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		out = append(out, m)
	}
	return out
}

// Date is a shorthand for a UTC midnight date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
