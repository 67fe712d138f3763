package services

import (
	"context"

	"go.uber.org/zap"

	"worktime-control/internal/domain"
	"worktime-control/internal/errors"
	"worktime-control/internal/gate"
	"worktime-control/internal/repository/sqlite"
	"worktime-control/internal/validation"
)

// trackServiceImpl implements the TrackService interface
type trackServiceImpl struct {
	repo      sqlite.Repository
	gate      *gate.Gate
	validator *validation.RecordValidator
	settings  gate.SettingsProvider
	logger    *zap.Logger
}

// NewTrackService creates a new TrackService instance.
func NewTrackService(repo sqlite.Repository, admission *gate.Gate, settings gate.SettingsProvider, logger *zap.Logger) TrackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &trackServiceImpl{
		repo:      repo,
		gate:      admission,
		validator: validation.NewRecordValidator(),
		settings:  settings,
		logger:    logger,
	}
}

// CheckRecord runs the schema checks and admission rules without persisting.
// Violations from both accumulate so the caller sees everything wrong with
// the proposal at once.
func (s *trackServiceImpl) CheckRecord(ctx context.Context, record *domain.TimeRecord, actingUserID int64) (domain.Violations, error) {
	if err := s.validator.CheckPreconditions(record); err != nil {
		return nil, err
	}

	var issue *domain.Issue
	if record.IssueID != 0 {
		found, err := s.repo.GetIssue(ctx, record.IssueID)
		if err != nil {
			return nil, err
		}
		issue = found
	}
	if issue != nil {
		record.ProjectID = issue.ProjectID
	}

	violations := s.validator.ValidateSchema(record, issue, s.settings.Snapshot())

	gateViolations, err := s.gate.BeforeSave(ctx, record, actingUserID)
	if err != nil {
		return nil, err
	}
	return append(violations, gateViolations...), nil
}

// SaveRecord validates and persists a proposed create or update.
func (s *trackServiceImpl) SaveRecord(ctx context.Context, record *domain.TimeRecord, actingUserID int64) (*SaveOutcome, error) {
	violations, err := s.CheckRecord(ctx, record, actingUserID)
	if err != nil {
		return nil, err
	}

	if !violations.Empty() {
		s.logger.Info("time record rejected",
			zap.Int64("owner_id", record.UserID),
			zap.Int("violation_count", len(violations)),
		)
		return &SaveOutcome{Violations: violations}, nil
	}

	var persisted *domain.TimeRecord
	if record.IsNew {
		persisted, err = s.repo.CreateTimeRecord(ctx, record)
	} else {
		err = s.repo.UpdateTimeRecord(ctx, record)
		if err == nil {
			persisted, err = s.repo.GetTimeRecord(ctx, record.ID)
		}
	}
	if err != nil {
		return nil, err
	}

	return &SaveOutcome{Record: persisted}, nil
}

// DeleteRecord removes a persisted record unless its settlement period is
// closed.
func (s *trackServiceImpl) DeleteRecord(ctx context.Context, recordID int64) error {
	record, err := s.repo.GetTimeRecord(ctx, recordID)
	if err != nil {
		return err
	}

	allowed, err := s.gate.BeforeDestroy(ctx, record)
	if err != nil {
		return err
	}
	if !allowed {
		return errors.NewInvalidInputError("spent_on", record.SpentOn, "settlement period is closed")
	}

	return s.repo.DeleteTimeRecord(ctx, recordID)
}

// GetRecord loads a persisted record.
func (s *trackServiceImpl) GetRecord(ctx context.Context, recordID int64) (*domain.TimeRecord, error) {
	return s.repo.GetTimeRecord(ctx, recordID)
}
