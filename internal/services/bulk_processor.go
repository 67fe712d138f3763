package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"worktime-control/internal/domain"
	"worktime-control/internal/gate"
	"worktime-control/internal/repository/sqlite"
)

// bulkProcessorImpl implements the BulkProcessor interface
type bulkProcessorImpl struct {
	repo   sqlite.Repository
	gate   *gate.Gate
	track  TrackService
	logger *zap.Logger
}

// NewBulkProcessor creates a new BulkProcessor instance.
func NewBulkProcessor(repo sqlite.Repository, admission *gate.Gate, track TrackService, logger *zap.Logger) BulkProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &bulkProcessorImpl{
		repo:   repo,
		gate:   admission,
		track:  track,
		logger: logger,
	}
}

// Apply processes a day's worth of proposed entries for one user. New rows
// without valuable attributes are skipped, persisted rows whose hours were
// blanked are deleted through the destroy gate, and everything else is saved
// through the admission gate. Each row gets its own outcome; one rejected row
// never blocks the others.
func (p *bulkProcessorImpl) Apply(ctx context.Context, userID, actingUserID int64, day time.Time, rows []BulkRow) ([]RowOutcome, error) {
	outcomes := make([]RowOutcome, 0, len(rows))

	for _, row := range rows {
		outcome, err := p.applyRow(ctx, userID, actingUserID, day, row)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}

	p.logger.Info("bulk day apply finished",
		zap.Int64("user_id", userID),
		zap.String("day", domain.DateOnly(day).Format("2006-01-02")),
		zap.Int("row_count", len(rows)),
	)

	return outcomes, nil
}

func (p *bulkProcessorImpl) applyRow(ctx context.Context, userID, actingUserID int64, day time.Time, row BulkRow) (RowOutcome, error) {
	if row.ID == 0 {
		if !rowValuable(row) {
			return RowOutcome{Action: RowSkipped}, nil
		}
		record := domain.NewTimeRecord(userID, domain.DateOnly(day))
		record.IssueID = row.IssueID
		record.Hours = row.Hours
		record.Comments = row.Comments
		return p.saveRow(ctx, record, actingUserID)
	}

	record, err := p.repo.GetTimeRecord(ctx, row.ID)
	if err != nil {
		return RowOutcome{}, err
	}

	if row.Hours == 0 {
		return p.deleteRow(ctx, record)
	}

	if row.IssueID != 0 {
		record.IssueID = row.IssueID
	}
	record.Hours = row.Hours
	record.Comments = row.Comments
	record.SpentOn = domain.DateOnly(day)
	return p.saveRow(ctx, record, actingUserID)
}

func (p *bulkProcessorImpl) saveRow(ctx context.Context, record *domain.TimeRecord, actingUserID int64) (RowOutcome, error) {
	outcome, err := p.track.SaveRecord(ctx, record, actingUserID)
	if err != nil {
		return RowOutcome{}, err
	}
	if !outcome.Violations.Empty() {
		return RowOutcome{Action: RowRejected, Violations: outcome.Violations}, nil
	}
	return RowOutcome{Action: RowSaved, Record: outcome.Record}, nil
}

func (p *bulkProcessorImpl) deleteRow(ctx context.Context, record *domain.TimeRecord) (RowOutcome, error) {
	allowed, err := p.gate.BeforeDestroy(ctx, record)
	if err != nil {
		return RowOutcome{}, err
	}
	if !allowed {
		var violations domain.Violations
		violations.Add(domain.FieldBase, domain.CodeOfficeBlocked)
		return RowOutcome{Action: RowRejected, Violations: violations}, nil
	}
	if err := p.repo.DeleteTimeRecord(ctx, record.ID); err != nil {
		return RowOutcome{}, err
	}
	return RowOutcome{Action: RowDeleted, Record: record}, nil
}

// rowValuable reports whether a new row carries anything worth persisting.
func rowValuable(row BulkRow) bool {
	return row.Hours != 0 || strings.TrimSpace(row.Comments) != ""
}
