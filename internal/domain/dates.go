package domain

import (
	"time"
)

// DateLayout is the calendar-date format used for allocation keys and plans.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string as a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, Invalid(CodeDateInvalid, "invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today truncates t to its UTC calendar date.
func Today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange returns every calendar date from..to inclusive.
func DateRange(from, to time.Time) []time.Time {
	from, to = Today(from), Today(to)
	var out []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// DaysBetween returns whole calendar days from a to b (negative if b precedes a).
func DaysBetween(a, b time.Time) int {
	return int(Today(b).Sub(Today(a)).Hours() / 24)
}
