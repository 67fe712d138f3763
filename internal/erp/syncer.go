package erp

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"worktime-control/internal/config"
	"worktime-control/internal/domain"
	"worktime-control/internal/errors"
)

// SyncStore receives the reference data a sync run pulls from the ERP.
type SyncStore interface {
	UpsertOfficeAssignment(ctx context.Context, userID int64, office *domain.Office) error
	UpsertHoliday(ctx context.Context, holiday *domain.Holiday) error
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	RunID     string
	Skipped   bool
	Employees int
	Holidays  int
}

// Syncer pulls employees and holidays from the ERP into the local store.
// The employee payload hash from the last applied run is kept in settings;
// when the ERP returns the same payload again the run is skipped.
type Syncer struct {
	client       *Client
	store        SyncStore
	settings     *config.SettingsStore
	settingsPath string
	logger       *zap.Logger
	now          func() time.Time
}

// NewSyncer creates a syncer. settingsPath may be empty when the updated
// settings should not be written back to disk.
func NewSyncer(client *Client, store SyncStore, settings *config.SettingsStore, settingsPath string, logger *zap.Logger) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Syncer{
		client:       client,
		store:        store,
		settings:     settings,
		settingsPath: settingsPath,
		logger:       logger,
		now:          time.Now,
	}
}

// Sync fetches the current ERP state and applies it to the local store.
func (s *Syncer) Sync(ctx context.Context) (*SyncResult, error) {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("sync_run", runID))

	employees, err := s.client.FetchEmployees(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := employeesHash(employees)
	if err != nil {
		return nil, err
	}

	current := s.settings.Snapshot()
	if current.LastEmployeesHash == hash {
		logger.Info("ERP employees unchanged, skipping sync",
			zap.String("hash", hash),
		)
		return &SyncResult{RunID: runID, Skipped: true}, nil
	}

	for _, employee := range employees {
		office := &domain.Office{
			OfficeID:      employee.OfficeID,
			CorporationID: employee.CorporationID,
			TimeZoneID:    employee.TimeZone,
		}
		if err := s.store.UpsertOfficeAssignment(ctx, employee.UserID, office); err != nil {
			return nil, err
		}
	}

	holidays, err := s.client.FetchHolidays(ctx, s.now().Year())
	if err != nil {
		return nil, err
	}

	applied := 0
	for _, entry := range holidays {
		date, err := time.Parse("2006-01-02", entry.Date)
		if err != nil {
			logger.Warn("Skipping holiday with malformed date",
				zap.String("date", entry.Date),
				zap.Int64("office_id", entry.OfficeID),
			)
			continue
		}
		holiday := &domain.Holiday{
			OfficeID: entry.OfficeID,
			Date:     date,
			DayType:  entry.DayType,
		}
		if err := s.store.UpsertHoliday(ctx, holiday); err != nil {
			return nil, err
		}
		applied++
	}

	updated := current.Clone()
	updated.LastEmployeesHash = hash
	s.settings.Replace(updated)

	if s.settingsPath != "" {
		if err := config.SaveSettingsFile(s.settingsPath, updated); err != nil {
			return nil, err
		}
	}

	logger.Info("ERP sync applied",
		zap.Int("employee_count", len(employees)),
		zap.Int("holiday_count", applied),
		zap.String("hash", hash),
	)

	return &SyncResult{
		RunID:     runID,
		Employees: len(employees),
		Holidays:  applied,
	}, nil
}

func employeesHash(employees []Employee) (string, error) {
	data, err := json.Marshal(employees)
	if err != nil {
		return "", errors.NewExternalError("erp", "hash employees", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
