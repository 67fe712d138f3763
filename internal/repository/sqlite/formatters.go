package sqlite

import (
	"time"

	"worktime-control/internal/domain"
)

const dayFormat = "2006-01-02"

// FormatDayForDB formats a calendar day as YYYY-MM-DD for database storage.
// Day columns sort and compare lexicographically in this form.
func FormatDayForDB(t time.Time) string {
	return domain.DateOnly(t).Format(dayFormat)
}

// ParseDayFromDB parses a YYYY-MM-DD day string from the database.
func ParseDayFromDB(s string) (time.Time, error) {
	return time.Parse(dayFormat, s)
}
