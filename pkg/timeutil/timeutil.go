// Package timeutil provides timezone-aware date helpers for the goal's
// configured location. The whole goal runs on one timezone; daily resets and
// broadcast hours are computed against it.
// No external dependencies - uses only standard library.
package timeutil

import "time"

// DateLayout is the calendar-date key format used for reset bookkeeping.
const DateLayout = "2006-01-02"

// DateKey returns the calendar date of t in loc as "YYYY-MM-DD".
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// SameDay reports whether a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DateKey(a, loc) == DateKey(b, loc)
}

// StartOfDay returns midnight of t's calendar date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// LocalHourMinute returns the hour and minute of t in loc.
func LocalHourMinute(t time.Time, loc *time.Location) (hour, minute int) {
	local := t.In(loc)
	return local.Hour(), local.Minute()
}
