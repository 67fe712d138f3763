package gate

import (
	"context"

	"go.uber.org/zap"

	"worktime-control/internal/config"
	"worktime-control/internal/domain"
	"worktime-control/internal/office"
	"worktime-control/internal/policy"
)

// SettingsProvider hands out control-settings snapshots. Each gate call takes
// exactly one snapshot and works against it for the whole evaluation.
type SettingsProvider interface {
	Snapshot() *config.Settings
}

// Gate is the admission façade invoked before create, update and destroy of a
// time record. It resolves the record owner's office, picks the rule variant
// for the acting user and runs the evaluator. The gate never mutates the
// record; callers abort persistence when violations come back.
type Gate struct {
	offices   *office.Context
	settings  SettingsProvider
	evaluator *policy.Evaluator
	logger    *zap.Logger
}

// New creates a gate over the given collaborators.
func New(offices *office.Context, settings SettingsProvider, evaluator *policy.Evaluator, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		offices:   offices,
		settings:  settings,
		evaluator: evaluator,
		logger:    logger,
	}
}

// BeforeSave evaluates a proposed create or update. The office is resolved for
// the record's owner; the variant is selected by the acting user's exclusive
// membership. An empty result admits the mutation.
func (g *Gate) BeforeSave(ctx context.Context, record *domain.TimeRecord, actingUserID int64) (domain.Violations, error) {
	settings := g.settings.Snapshot()

	off, err := g.offices.Resolve(ctx, record.UserID, settings)
	if err != nil {
		return nil, err
	}

	variant := policy.Standard
	if office.IsExclusive(settings, actingUserID, record.UserID) {
		variant = policy.Exclusive
	}
	g.logger.Debug("evaluating time record",
		zap.Int64("owner_id", record.UserID),
		zap.Int64("acting_user_id", actingUserID),
		zap.String("variant", variant.Name))

	return g.evaluator.Evaluate(ctx, record, off, settings, variant)
}

// BeforeDestroy reports whether the record may be deleted. Deletion is blocked
// only by a closed settlement period covering the record's months.
func (g *Gate) BeforeDestroy(ctx context.Context, record *domain.TimeRecord) (bool, error) {
	settings := g.settings.Snapshot()

	off, err := g.offices.Resolve(ctx, record.UserID, settings)
	if err != nil {
		return false, err
	}
	closed, err := g.evaluator.PeriodClosed(ctx, record, off)
	if err != nil {
		return false, err
	}
	return !closed, nil
}
