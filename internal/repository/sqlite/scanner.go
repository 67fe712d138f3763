package sqlite

import (
	"worktime-control/internal/domain"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTimeRecord scans a persisted time record. The stored hours and day are
// mirrored into the Previous* fields so that the loaded record is the "nothing
// changed yet" baseline for an edit.
func ScanTimeRecord(scanner Scanner) (*domain.TimeRecord, error) {
	record := &domain.TimeRecord{}
	var spentOn string

	err := scanner.Scan(
		&record.ID,
		&record.UserID,
		&record.IssueID,
		&record.ProjectID,
		&record.Hours,
		&record.Comments,
		&spentOn,
	)
	if err != nil {
		return nil, err
	}

	day, err := ParseDayFromDB(spentOn)
	if err != nil {
		return nil, err
	}
	record.SpentOn = day
	record.PreviousSpentOn = day
	record.PreviousHours = record.Hours

	return record, nil
}

// ScanTimeRecords scans multiple time records from database rows
func ScanTimeRecords(rows Rows) ([]*domain.TimeRecord, error) {
	var records []*domain.TimeRecord
	for rows.Next() {
		record, err := ScanTimeRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ScanOffice scans an office assignment row
func ScanOffice(scanner Scanner) (*domain.Office, error) {
	office := &domain.Office{}
	err := scanner.Scan(&office.OfficeID, &office.CorporationID, &office.TimeZoneID)
	if err != nil {
		return nil, err
	}
	return office, nil
}

// ScanStatus scans a settlement status row
func ScanStatus(scanner Scanner) (*domain.ApprovalPeriodStatus, error) {
	status := &domain.ApprovalPeriodStatus{}
	var period string
	err := scanner.Scan(&status.OfficeID, &status.CorporationID, &period, &status.Closed)
	if err != nil {
		return nil, err
	}
	parsed, err := ParseDayFromDB(period)
	if err != nil {
		return nil, err
	}
	status.Period = parsed
	return status, nil
}

// ScanIssue scans an issue row
func ScanIssue(scanner Scanner) (*domain.Issue, error) {
	issue := &domain.Issue{}
	err := scanner.Scan(
		&issue.ID,
		&issue.ProjectID,
		&issue.Subject,
		&issue.Status.ID,
		&issue.Status.Name,
		&issue.Status.IsClosed,
	)
	if err != nil {
		return nil, err
	}
	return issue, nil
}
