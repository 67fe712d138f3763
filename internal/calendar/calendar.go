package calendar

import (
	"context"
	"time"

	"worktime-control/internal/domain"
)

// HolidayCalendar provides the office holiday reference data.
type HolidayCalendar interface {
	// IsPaidHoliday reports whether a paid-type holiday exists for the office
	// at the given day. Non-paid day types do not suppress a working day.
	IsPaidHoliday(ctx context.Context, officeID int64, day time.Time) (bool, error)
}

// WorkdayCounter answers working-day questions for an office: weekends are
// never working days, and neither are days with a paid holiday in the office's
// calendar.
type WorkdayCounter struct {
	holidays HolidayCalendar
}

// NewWorkdayCounter creates a counter backed by the given holiday calendar.
func NewWorkdayCounter(holidays HolidayCalendar) *WorkdayCounter {
	return &WorkdayCounter{holidays: holidays}
}

// IsWorkingDay reports whether the day is a working day for the office.
// With a nil office only the weekend rule applies.
func (c *WorkdayCounter) IsWorkingDay(ctx context.Context, day time.Time, office *domain.Office) (bool, error) {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return false, nil
	}
	if office == nil {
		return true, nil
	}
	paid, err := c.holidays.IsPaidHoliday(ctx, office.OfficeID, domain.DateOnly(day))
	if err != nil {
		return false, err
	}
	return !paid, nil
}

// WorkingDaysBetween counts the working days strictly between from and to,
// excluding both endpoints. When from is on or after to the interval is empty
// and the count is 0, never negative.
func (c *WorkdayCounter) WorkingDaysBetween(ctx context.Context, office *domain.Office, from, to time.Time) (int, error) {
	count := 0
	end := domain.DateOnly(to)
	for day := domain.DateOnly(from).AddDate(0, 0, 1); day.Before(end); day = day.AddDate(0, 0, 1) {
		working, err := c.IsWorkingDay(ctx, day, office)
		if err != nil {
			return 0, err
		}
		if working {
			count++
		}
	}
	return count, nil
}
