package utils

import "time"

// StartOfDayUTC returns the most recent UTC midnight at or before t.
// Daily reward availability is always judged against this boundary.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NextMidnightUTC returns the next UTC midnight strictly after t.
func NextMidnightUTC(t time.Time) time.Time {
	return StartOfDayUTC(t).Add(24 * time.Hour)
}

// DayKeyUTC returns the UTC calendar day of t as YYYY-MM-DD. Daily claim
// rows store this key so the DB can enforce one claim per day.
func DayKeyUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
