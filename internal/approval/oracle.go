package approval

import (
	"context"
	"time"

	"worktime-control/internal/domain"
)

// PeriodStore provides settlement statuses for office-months.
type PeriodStore interface {
	// FindStatus returns the first status matching the office, corporation and
	// any of the given periods, or nil when none exists.
	FindStatus(ctx context.Context, officeID, corporationID int64, periods []time.Time) (*domain.ApprovalPeriodStatus, error)
}

// Oracle answers whether a settlement period covering a record's months is
// closed. A closed period freezes every record mutation inside it.
type Oracle struct {
	store PeriodStore
}

// NewOracle creates an oracle over the given period store.
func NewOracle(store PeriodStore) *Oracle {
	return &Oracle{store: store}
}

// IsPeriodClosed reports whether the office has a closed settlement status for
// any of the given month-start periods. Without an office or periods the
// answer is false; a missing status also means open.
func (o *Oracle) IsPeriodClosed(ctx context.Context, office *domain.Office, periods []time.Time) (bool, error) {
	if office == nil || len(periods) == 0 {
		return false, nil
	}
	status, err := o.store.FindStatus(ctx, office.OfficeID, office.CorporationID, periods)
	if err != nil {
		return false, err
	}
	if status == nil {
		return false, nil
	}
	return status.Closed, nil
}

// PeriodsFor collects the month-start periods a record evaluation must check:
// the month of the proposed spent-on day and, for a record being moved across
// a month boundary, the month of the stored day as well. Zero days are skipped.
func PeriodsFor(record *domain.TimeRecord) []time.Time {
	var periods []time.Time
	if !record.SpentOn.IsZero() {
		periods = append(periods, domain.BeginningOfMonth(record.SpentOn))
	}
	if !record.PreviousSpentOn.IsZero() {
		prior := domain.BeginningOfMonth(record.PreviousSpentOn)
		if len(periods) == 0 || !prior.Equal(periods[0]) {
			periods = append(periods, prior)
		}
	}
	return periods
}
