package validation

import (
	"math"
	"strings"

	"worktime-control/internal/config"
	"worktime-control/internal/domain"
	"worktime-control/internal/errors"
)

// MinCommentLength is the minimum length of a non-blank comment.
const MinCommentLength = 5

// RecordValidator checks a proposed record before the admission engine runs.
// It separates two concerns: preconditions are programming errors (malformed
// input, missing identifiers) and surface as *errors.AppError; schema checks
// are business rules and come back as violations, the same shape the engine
// produces.
type RecordValidator struct{}

// NewRecordValidator creates a record validator.
func NewRecordValidator() *RecordValidator {
	return &RecordValidator{}
}

// CheckPreconditions verifies that the record is well-formed enough to
// evaluate. A failure here is a caller bug, not a policy rejection.
func (v *RecordValidator) CheckPreconditions(record *domain.TimeRecord) error {
	if record == nil {
		return errors.NewInvalidInputError("record", nil, "must not be nil")
	}
	if record.UserID <= 0 {
		return errors.NewInvalidInputError("user_id", record.UserID, "must be a positive integer")
	}
	if record.Hours < 0 {
		return errors.NewInvalidInputError("hours", record.Hours, "must not be negative")
	}
	if math.IsNaN(record.Hours) || math.IsInf(record.Hours, 0) {
		return errors.NewInvalidInputError("hours", record.Hours, "must be a finite number")
	}
	if !record.IsNew && record.ID <= 0 {
		return errors.NewInvalidInputError("id", record.ID, "persisted records need an id")
	}
	return nil
}

// ValidateSchema runs the entry-level business checks: comments, issue
// linkage and the per-project issue-status guards. The issue argument is the
// resolved linked issue, nil when the record has none.
func (v *RecordValidator) ValidateSchema(record *domain.TimeRecord, issue *domain.Issue, settings *config.Settings) domain.Violations {
	var violations domain.Violations

	comments := strings.TrimSpace(record.Comments)
	if comments == "" {
		violations.Add(domain.FieldBase, domain.CodeCommentsMissing)
	} else if len([]rune(comments)) < MinCommentLength {
		violations.Add(domain.FieldBase, domain.CodeCommentsTooShort)
	}

	if record.IssueID == 0 || issue == nil {
		violations.Add(domain.FieldBase, domain.CodeIssueMissing)
		return violations
	}

	if settings.ProjectPreventsNew(record.ProjectID) && issue.Status.Name == domain.IssueStatusNew {
		violations.Add(domain.FieldBase, domain.CodeUnableTrackNewIssue)
	}
	if settings.ProjectPreventsClosed(record.ProjectID) && issue.Status.IsClosed {
		violations.Add(domain.FieldBase, domain.CodeUnableTrackClosedIssue)
	}

	return violations
}
