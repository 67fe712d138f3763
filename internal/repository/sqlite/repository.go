package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"worktime-control/internal/domain"
	"worktime-control/internal/errors"
	"worktime-control/internal/repository/sqlite/migrations"
)

// Repository defines the persistence operations for time records and the
// reference data the admission rules read.
type Repository interface {
	// Time records
	CreateTimeRecord(ctx context.Context, record *domain.TimeRecord) (*domain.TimeRecord, error)
	GetTimeRecord(ctx context.Context, id int64) (*domain.TimeRecord, error)
	UpdateTimeRecord(ctx context.Context, record *domain.TimeRecord) error
	DeleteTimeRecord(ctx context.Context, id int64) error
	ListTimeRecordsForMonth(ctx context.Context, userID int64, month time.Time) ([]*domain.TimeRecord, error)
	DailyHoursSum(ctx context.Context, userID int64, day time.Time) (float64, error)

	// Office assignments
	OfficeFor(ctx context.Context, userID int64) (*domain.Office, error)
	UpsertOfficeAssignment(ctx context.Context, userID int64, office *domain.Office) error

	// Holidays
	IsPaidHoliday(ctx context.Context, officeID int64, day time.Time) (bool, error)
	UpsertHoliday(ctx context.Context, holiday *domain.Holiday) error

	// Settlement statuses
	FindStatus(ctx context.Context, officeID, corporationID int64, periods []time.Time) (*domain.ApprovalPeriodStatus, error)
	SaveStatus(ctx context.Context, status *domain.ApprovalPeriodStatus) error

	// Issues
	GetIssue(ctx context.Context, id int64) (*domain.Issue, error)
	UpsertIssue(ctx context.Context, issue *domain.Issue) error

	Close() error
}

// SQLiteRepository implements Repository using a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository at the given path and applies any
// pending schema migrations.
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, HandleDatabaseError("open database", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, HandleDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTimeRecord inserts a new time record and returns it with the
// assigned ID.
func (r *SQLiteRepository) CreateTimeRecord(ctx context.Context, record *domain.TimeRecord) (*domain.TimeRecord, error) {
	query := `INSERT INTO time_records (user_id, issue_id, project_id, hours, comments, spent_on)
		VALUES (?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		record.UserID,
		record.IssueID,
		record.ProjectID,
		domain.Round2(record.Hours),
		record.Comments,
		FormatDayForDB(record.SpentOn),
	)
	if err != nil {
		return nil, err
	}

	return r.GetTimeRecord(ctx, id)
}

// GetTimeRecord retrieves a time record by ID
func (r *SQLiteRepository) GetTimeRecord(ctx context.Context, id int64) (*domain.TimeRecord, error) {
	query := `SELECT id, user_id, issue_id, project_id, hours, comments, spent_on
		FROM time_records WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	record, err := ScanTimeRecord(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("time record", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return nil, HandleDatabaseError("get time record", err)
	}

	return record, nil
}

// UpdateTimeRecord persists the mutable fields of an existing time record.
func (r *SQLiteRepository) UpdateTimeRecord(ctx context.Context, record *domain.TimeRecord) error {
	query := `UPDATE time_records
		SET issue_id = ?, project_id = ?, hours = ?, comments = ?, spent_on = ?
		WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "time record", strconv.FormatInt(record.ID, 10),
		record.IssueID,
		record.ProjectID,
		domain.Round2(record.Hours),
		record.Comments,
		FormatDayForDB(record.SpentOn),
		record.ID,
	)
}

// DeleteTimeRecord removes a time record by ID
func (r *SQLiteRepository) DeleteTimeRecord(ctx context.Context, id int64) error {
	query := `DELETE FROM time_records WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "time record", strconv.FormatInt(id, 10), id)
}

// ListTimeRecordsForMonth returns a user's records within the calendar month
// of the given day, ordered by day then ID.
func (r *SQLiteRepository) ListTimeRecordsForMonth(ctx context.Context, userID int64, month time.Time) ([]*domain.TimeRecord, error) {
	first := domain.BeginningOfMonth(month)
	last := domain.EndOfMonth(month)

	query := `SELECT id, user_id, issue_id, project_id, hours, comments, spent_on
		FROM time_records
		WHERE user_id = ? AND spent_on >= ? AND spent_on <= ?
		ORDER BY spent_on, id`

	rows, err := r.db.QueryContext(ctx, query, userID, FormatDayForDB(first), FormatDayForDB(last))
	if err != nil {
		return nil, HandleDatabaseError("list time records", err)
	}
	defer rows.Close()

	records, err := ScanTimeRecords(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan time records", err)
	}
	return records, nil
}

// DailyHoursSum returns the total stored hours a user has on one day.
func (r *SQLiteRepository) DailyHoursSum(ctx context.Context, userID int64, day time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(hours), 0) FROM time_records WHERE user_id = ? AND spent_on = ?`

	var sum float64
	err := r.db.QueryRowContext(ctx, query, userID, FormatDayForDB(day)).Scan(&sum)
	if err != nil {
		return 0, HandleDatabaseError("sum daily hours", err)
	}
	return sum, nil
}

// OfficeFor returns the office a user is assigned to, or nil when the user
// has no assignment.
func (r *SQLiteRepository) OfficeFor(ctx context.Context, userID int64) (*domain.Office, error) {
	query := `SELECT office_id, corporation_id, time_zone FROM office_assignments WHERE user_id = ?`

	row := r.db.QueryRowContext(ctx, query, userID)
	office, err := ScanOffice(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, HandleDatabaseError("get office assignment", err)
	}
	return office, nil
}

// UpsertOfficeAssignment stores or replaces a user's office assignment.
func (r *SQLiteRepository) UpsertOfficeAssignment(ctx context.Context, userID int64, office *domain.Office) error {
	query := `INSERT INTO office_assignments (user_id, office_id, corporation_id, time_zone)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			office_id = excluded.office_id,
			corporation_id = excluded.corporation_id,
			time_zone = excluded.time_zone`

	_, err := r.db.ExecContext(ctx, query, userID, office.OfficeID, office.CorporationID, office.TimeZoneID)
	if err != nil {
		return HandleDatabaseError("upsert office assignment", err)
	}
	return nil
}

// IsPaidHoliday reports whether a day is a paid-type holiday for an office.
func (r *SQLiteRepository) IsPaidHoliday(ctx context.Context, officeID int64, day time.Time) (bool, error) {
	query := `SELECT COUNT(1) FROM holidays WHERE office_id = ? AND date = ? AND day_type = ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, officeID, FormatDayForDB(day), domain.DayTypePaid).Scan(&count)
	if err != nil {
		return false, HandleDatabaseError("check holiday", err)
	}
	return count > 0, nil
}

// UpsertHoliday stores or replaces a holiday calendar entry.
func (r *SQLiteRepository) UpsertHoliday(ctx context.Context, holiday *domain.Holiday) error {
	query := `INSERT INTO holidays (office_id, date, day_type)
		VALUES (?, ?, ?)
		ON CONFLICT(office_id, date) DO UPDATE SET day_type = excluded.day_type`

	_, err := r.db.ExecContext(ctx, query, holiday.OfficeID, FormatDayForDB(holiday.Date), holiday.DayType)
	if err != nil {
		return HandleDatabaseError("upsert holiday", err)
	}
	return nil
}

// FindStatus returns the first settlement status recorded for any of the
// given periods, or nil when none of them has one.
func (r *SQLiteRepository) FindStatus(ctx context.Context, officeID, corporationID int64, periods []time.Time) (*domain.ApprovalPeriodStatus, error) {
	if len(periods) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(periods))
	args := []interface{}{officeID, corporationID}
	for i, period := range periods {
		placeholders[i] = "?"
		args = append(args, FormatDayForDB(period))
	}

	query := fmt.Sprintf(`SELECT office_id, corporation_id, period, closed
		FROM settlement_statuses
		WHERE office_id = ? AND corporation_id = ? AND period IN (%s)
		ORDER BY period LIMIT 1`, strings.Join(placeholders, ", "))

	row := r.db.QueryRowContext(ctx, query, args...)
	status, err := ScanStatus(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, HandleDatabaseError("find settlement status", err)
	}
	return status, nil
}

// SaveStatus stores or replaces a settlement status for one office-month.
func (r *SQLiteRepository) SaveStatus(ctx context.Context, status *domain.ApprovalPeriodStatus) error {
	query := `INSERT INTO settlement_statuses (office_id, corporation_id, period, closed)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(office_id, corporation_id, period) DO UPDATE SET closed = excluded.closed`

	_, err := r.db.ExecContext(ctx, query,
		status.OfficeID,
		status.CorporationID,
		FormatDayForDB(domain.BeginningOfMonth(status.Period)),
		status.Closed,
	)
	if err != nil {
		return HandleDatabaseError("save settlement status", err)
	}
	return nil
}

// GetIssue returns an issue by ID, or nil when it is unknown.
func (r *SQLiteRepository) GetIssue(ctx context.Context, id int64) (*domain.Issue, error) {
	query := `SELECT id, project_id, subject, status_id, status_name, status_closed
		FROM issues WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	issue, err := ScanIssue(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, HandleDatabaseError("get issue", err)
	}
	return issue, nil
}

// UpsertIssue stores or replaces an issue.
func (r *SQLiteRepository) UpsertIssue(ctx context.Context, issue *domain.Issue) error {
	query := `INSERT INTO issues (id, project_id, subject, status_id, status_name, status_closed)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			subject = excluded.subject,
			status_id = excluded.status_id,
			status_name = excluded.status_name,
			status_closed = excluded.status_closed`

	_, err := r.db.ExecContext(ctx, query,
		issue.ID,
		issue.ProjectID,
		issue.Subject,
		issue.Status.ID,
		issue.Status.Name,
		issue.Status.IsClosed,
	)
	if err != nil {
		return HandleDatabaseError("upsert issue", err)
	}
	return nil
}
