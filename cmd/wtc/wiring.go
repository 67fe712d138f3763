package main

import (
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"worktime-control/internal/approval"
	"worktime-control/internal/calendar"
	"worktime-control/internal/cli"
	"worktime-control/internal/config"
	"worktime-control/internal/erp"
	"worktime-control/internal/errors"
	"worktime-control/internal/gate"
	"worktime-control/internal/office"
	"worktime-control/internal/policy"
	"worktime-control/internal/report"
	"worktime-control/internal/repository/postgres"
	"worktime-control/internal/repository/rediscache"
	"worktime-control/internal/repository/sqlite"
	"worktime-control/internal/services"
)

// buildApp wires the command collaborators from configuration. The returned
// cleanup closes every opened connection.
func buildApp(cfg *config.Config, logger *zap.Logger) (*cli.App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if err := os.MkdirAll(cfg.Database.Dir, 0755); err != nil {
		return nil, cleanup, fmt.Errorf("failed to create database directory: %w", err)
	}

	repo, err := sqlite.New(cfg.GetDatabasePath())
	if err != nil {
		return nil, cleanup, err
	}
	closers = append(closers, func() { repo.Close() })

	settingsStore, err := loadSettings(cfg, logger)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	// The local store answers every reference lookup; a configured ERP DSN
	// switches those lookups to the ERP's Postgres.
	var directory office.Directory = repo
	var holidays calendar.HolidayCalendar = repo
	var periods approval.PeriodStore = repo

	if cfg.Erp.PostgresDSN != "" {
		erpRepo, err := postgres.New(cfg.Erp.PostgresDSN)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, func() { erpRepo.Close() })
		directory = erpRepo
		holidays = erpRepo
		periods = erpRepo
		logger.Info("using ERP Postgres for reference data")
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { client.Close() })
		periods = rediscache.NewPeriodStatusCache(periods, client, cfg.Redis.TTL, logger)
		logger.Info("settlement status caching enabled", zap.String("addr", cfg.Redis.Addr))
	}

	counter := calendar.NewWorkdayCounter(holidays)
	oracle := approval.NewOracle(periods)
	evaluator := policy.NewEvaluator(counter, oracle, repo, logger)
	offices := office.NewContext(directory)
	admission := gate.New(offices, settingsStore, evaluator, logger)

	track := services.NewTrackService(repo, admission, settingsStore, logger)
	bulk := services.NewBulkProcessor(repo, admission, track, logger)
	reports := report.NewBuilder(repo, counter, logger)

	var syncer *erp.Syncer
	if cfg.Erp.BaseURL != "" {
		client := erp.NewClient(cfg.Erp.BaseURL, cfg.Erp.APIToken, cfg.Erp.SyncTimeout, logger)
		syncer = erp.NewSyncer(client, repo, settingsStore, cfg.Settings.File, logger)
	}

	app := &cli.App{
		Config:   cfg,
		Settings: settingsStore,
		Offices:  offices,
		Track:    track,
		Bulk:     bulk,
		Reports:  reports,
		Syncer:   syncer,
		Logger:   logger,
	}
	return app, cleanup, nil
}

// loadSettings reads the control-settings file, falling back to disabled
// control when the file does not exist yet.
func loadSettings(cfg *config.Config, logger *zap.Logger) (*config.SettingsStore, error) {
	settings, err := config.LoadSettingsFile(cfg.Settings.File)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && os.IsNotExist(appErr.Cause) {
			logger.Warn("settings file missing, track control disabled",
				zap.String("path", cfg.Settings.File))
			return config.NewSettingsStore(&config.Settings{}), nil
		}
		return nil, err
	}
	return config.NewSettingsStore(settings), nil
}
