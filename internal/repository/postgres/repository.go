// Package postgres reads office assignments, holiday calendars and
// settlement statuses directly from the ERP database. It serves the same
// lookups as the local SQLite store for deployments that sit next to the ERP.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"worktime-control/internal/domain"
	"worktime-control/internal/errors"
)

const dayFormat = "2006-01-02"

// ErpRepository looks up admission reference data in the ERP's PostgreSQL
// database.
type ErpRepository struct {
	db *sql.DB
}

// New opens a connection to the ERP database and verifies it with a ping.
func New(dsn string) (*ErpRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("open erp database", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("ping erp database", err)
	}

	return &ErpRepository{db: db}, nil
}

// Close closes the database connection
func (r *ErpRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// OfficeFor returns the office a user is assigned to, or nil when the ERP
// has no assignment for them.
func (r *ErpRepository) OfficeFor(ctx context.Context, userID int64) (*domain.Office, error) {
	query := `SELECT office_id, corporation_id, COALESCE(time_zone, '')
		FROM office_assignments WHERE user_id = $1`

	office := &domain.Office{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&office.OfficeID, &office.CorporationID, &office.TimeZoneID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewDatabaseError("get office assignment", err)
	}
	return office, nil
}

// IsPaidHoliday reports whether a day is a paid-type holiday for an office.
func (r *ErpRepository) IsPaidHoliday(ctx context.Context, officeID int64, day time.Time) (bool, error) {
	query := `SELECT COUNT(1) FROM holidays
		WHERE office_id = $1 AND date = $2 AND day_type = $3`

	var count int
	err := r.db.QueryRowContext(ctx, query, officeID, domain.DateOnly(day).Format(dayFormat), domain.DayTypePaid).Scan(&count)
	if err != nil {
		return false, errors.NewDatabaseError("check holiday", err)
	}
	return count > 0, nil
}

// FindStatus returns the first settlement status recorded for any of the
// given periods, or nil when none of them has one.
func (r *ErpRepository) FindStatus(ctx context.Context, officeID, corporationID int64, periods []time.Time) (*domain.ApprovalPeriodStatus, error) {
	if len(periods) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(periods))
	args := []interface{}{officeID, corporationID}
	for i, period := range periods {
		placeholders[i] = fmt.Sprintf("$%d", i+3)
		args = append(args, domain.DateOnly(period).Format(dayFormat))
	}

	query := fmt.Sprintf(`SELECT office_id, corporation_id, period, closed
		FROM settlement_statuses
		WHERE office_id = $1 AND corporation_id = $2 AND period IN (%s)
		ORDER BY period LIMIT 1`, strings.Join(placeholders, ", "))

	status := &domain.ApprovalPeriodStatus{}
	var period time.Time
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&status.OfficeID, &status.CorporationID, &period, &status.Closed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewDatabaseError("find settlement status", err)
	}
	status.Period = domain.DateOnly(period)

	return status, nil
}
