// Package services orchestrates record persistence around the admission
// gate: single-record save and delete, and the bulk day apply used by
// timesheet-style editing.
package services

import (
	"context"
	"time"

	"worktime-control/internal/domain"
)

// SaveOutcome is the result of one save attempt. Violations is empty when the
// record was admitted and persisted; Record is the persisted state in that
// case, nil otherwise.
type SaveOutcome struct {
	Record     *domain.TimeRecord
	Violations domain.Violations
}

// TrackService is the single-record entry point. Every mutation passes the
// schema checks and the admission gate before touching storage.
type TrackService interface {
	// SaveRecord validates and persists a proposed create or update.
	SaveRecord(ctx context.Context, record *domain.TimeRecord, actingUserID int64) (*SaveOutcome, error)

	// CheckRecord runs the same checks as SaveRecord without persisting.
	CheckRecord(ctx context.Context, record *domain.TimeRecord, actingUserID int64) (domain.Violations, error)

	// DeleteRecord removes a persisted record unless its settlement period is
	// closed.
	DeleteRecord(ctx context.Context, recordID int64) error

	// GetRecord loads a persisted record.
	GetRecord(ctx context.Context, recordID int64) (*domain.TimeRecord, error)
}

// BulkRow is one proposed entry in a bulk day apply. ID is zero for a new
// entry and the persisted id otherwise.
type BulkRow struct {
	ID       int64
	IssueID  int64
	Hours    float64
	Comments string
}

// RowOutcome records what happened to one bulk row.
type RowOutcome struct {
	Action     RowAction
	Record     *domain.TimeRecord
	Violations domain.Violations
}

// RowAction is the disposition of one bulk row.
type RowAction string

const (
	RowSkipped  RowAction = "skipped"
	RowSaved    RowAction = "saved"
	RowDeleted  RowAction = "deleted"
	RowRejected RowAction = "rejected"
)

// BulkProcessor applies a day's worth of proposed entries for one user.
type BulkProcessor interface {
	Apply(ctx context.Context, userID, actingUserID int64, day time.Time, rows []BulkRow) ([]RowOutcome, error)
}
