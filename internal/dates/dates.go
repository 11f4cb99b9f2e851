// Package dates works on calendar days. Time-of-day and zone offsets are
// dropped: a day is the year/month/day triple of the value it was built from.
package dates

import (
	"fmt"
	"time"
)

// Layout is the booked-date string format (YYYY-MM-DD).
const Layout = "2006-01-02"

// now is swapped in tests.
var now = time.Now

// Day truncates t to midnight UTC of its own calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Parse reads a YYYY-MM-DD string.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Format renders the calendar day of t as YYYY-MM-DD.
func Format(t time.Time) string {
	return Day(t).Format(Layout)
}

// DaysBetweenInclusive counts calendar days from start to end, both ends
// included. The result is never below 1: inverted ranges are treated as a
// one-day rental.
func DaysBetweenInclusive(start, end time.Time) int {
	n := int(Day(end).Sub(Day(start)).Hours()/24) + 1
	if n < 1 {
		return 1
	}
	return n
}

// IsPast reports whether d falls on a calendar day before today.
func IsPast(d time.Time) bool {
	return IsPastAt(d, now())
}

// IsPastAt is IsPast against an explicit clock.
func IsPastAt(d, now time.Time) bool {
	return Day(d).Before(Day(now))
}

// Each calls fn for every calendar day from start to end inclusive, in order.
// Nothing is called when end is before start.
func Each(start, end time.Time, fn func(day time.Time)) {
	last := Day(end)
	for d := Day(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}
