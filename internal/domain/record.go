package domain

import (
	"math"
	"time"
)

// TimeRecord represents a proposed work-time record as seen by the admission
// engine. This is a pure domain model without database-specific concerns.
//
// For a record that is being modified, PreviousSpentOn and PreviousHours carry
// the persisted values captured at the start of the evaluation. For a new
// record both are zero and IsNew is true.
type TimeRecord struct {
	ID              int64 // 0 means not persisted yet
	UserID          int64
	IssueID         int64 // 0 means no issue linked
	ProjectID       int64
	Hours           float64
	Comments        string
	SpentOn         time.Time // calendar day, zero means missing
	PreviousSpentOn time.Time
	PreviousHours   float64
	IsNew           bool
}

// NewTimeRecord creates a new, unpersisted TimeRecord for the given user and day.
func NewTimeRecord(userID int64, spentOn time.Time) *TimeRecord {
	return &TimeRecord{
		UserID:  userID,
		SpentOn: DateOnly(spentOn),
		IsNew:   true,
	}
}

// SpentOnChanged reports whether the spent-on day of a persisted record
// differs from its stored value. Always false for new records.
func (r *TimeRecord) SpentOnChanged() bool {
	if r.IsNew || r.PreviousSpentOn.IsZero() {
		return false
	}
	return !SameDay(r.SpentOn, r.PreviousSpentOn)
}

// HoursIncreased reports whether the proposed hours exceed the stored hours,
// both rounded to two decimals. New records have zero stored hours, so any
// positive proposal counts as an increase.
func (r *TimeRecord) HoursIncreased() bool {
	return Round2(r.Hours) > Round2(r.PreviousHours)
}

// Round2 rounds an hour value to two decimal places, matching the precision
// the hour-change rules compare at.
func Round2(hours float64) float64 {
	return math.Round(hours*100) / 100
}
