package domain

import "time"

// DateOnly truncates a time to its calendar day, normalized to midnight UTC.
// All day-level comparisons in the engine go through this normalization.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// SameMonth reports whether two times fall in the same month of the same year.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// BeginningOfMonth returns the first day of the month containing t.
func BeginningOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of the month containing t.
func EndOfMonth(t time.Time) time.Time {
	return BeginningOfMonth(t).AddDate(0, 1, -1)
}

// Yesterday returns the calendar day before t.
func Yesterday(t time.Time) time.Time {
	return DateOnly(t).AddDate(0, 0, -1)
}
