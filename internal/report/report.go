// Package report builds per-day monthly hour summaries for a user and
// exports them as spreadsheets.
package report

import (
	"context"
	"time"

	"go.uber.org/zap"

	"worktime-control/internal/calendar"
	"worktime-control/internal/domain"
)

// RecordLister provides the time records a summary aggregates.
type RecordLister interface {
	ListTimeRecordsForMonth(ctx context.Context, userID int64, month time.Time) ([]*domain.TimeRecord, error)
}

// DaySummary is one calendar day of a monthly summary.
type DaySummary struct {
	Day        time.Time
	Hours      float64
	Records    int
	WorkingDay bool
}

// MonthlySummary is a user's per-day hour grid for one calendar month.
type MonthlySummary struct {
	UserID      int64
	Month       time.Time // first day of the month
	Days        []DaySummary
	TotalHours  float64
	WorkingDays int
}

// Builder assembles monthly summaries from stored records and the office
// working-day calendar.
type Builder struct {
	records RecordLister
	counter *calendar.WorkdayCounter
	logger  *zap.Logger
}

// NewBuilder creates a summary builder.
func NewBuilder(records RecordLister, counter *calendar.WorkdayCounter, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{records: records, counter: counter, logger: logger}
}

// Build aggregates a user's records for the month containing the given day.
// Every day of the month gets a row, including days without records. The
// office may be nil, in which case only weekends count as non-working.
func (b *Builder) Build(ctx context.Context, userID int64, month time.Time, office *domain.Office) (*MonthlySummary, error) {
	first := domain.BeginningOfMonth(month)
	last := domain.EndOfMonth(month)

	records, err := b.records.ListTimeRecordsForMonth(ctx, userID, first)
	if err != nil {
		return nil, err
	}

	hoursByDay := make(map[string]float64)
	countByDay := make(map[string]int)
	for _, record := range records {
		key := domain.DateOnly(record.SpentOn).Format("2006-01-02")
		hoursByDay[key] = domain.Round2(hoursByDay[key] + record.Hours)
		countByDay[key]++
	}

	summary := &MonthlySummary{
		UserID: userID,
		Month:  first,
	}

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		working, err := b.counter.IsWorkingDay(ctx, day, office)
		if err != nil {
			return nil, err
		}
		key := day.Format("2006-01-02")
		summary.Days = append(summary.Days, DaySummary{
			Day:        day,
			Hours:      hoursByDay[key],
			Records:    countByDay[key],
			WorkingDay: working,
		})
		summary.TotalHours = domain.Round2(summary.TotalHours + hoursByDay[key])
		if working {
			summary.WorkingDays++
		}
	}

	b.logger.Debug("Built monthly summary",
		zap.Int64("user_id", userID),
		zap.String("month", first.Format("2006-01")),
		zap.Float64("total_hours", summary.TotalHours),
	)

	return summary, nil
}
