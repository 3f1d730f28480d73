package domain

import "time"

// StartOfDayUTC truncates t to midnight of its UTC calendar day.
func StartOfDayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextDay returns midnight UTC of the day after t.
func NextDay(t time.Time) time.Time {
	return StartOfDayUTC(t).AddDate(0, 0, 1)
}
