package domain

import "fmt"

// Field identifies the record attribute a violation is attached to.
type Field string

const (
	FieldBase    Field = "base"
	FieldHours   Field = "hours"
	FieldSpentOn Field = "spent_on"
)

// Code identifies the policy rule a record violates. Codes are abstract
// identifiers; translation to user-facing text is the caller's concern.
type Code string

const (
	// Admission rule codes.
	CodeOfficeBlocked            Code = "office_blocked"
	CodeInvalidSum               Code = "invalid_sum"
	CodeTrackDayInFuture         Code = "track_day_can_not_be_in_future"
	CodeTrackDayMissing          Code = "track_day_missing"
	CodeInvalidCheckedDate       Code = "invalid_checked_date"
	CodeHoursCanNotBeIncreased   Code = "can_not_be_increased"
	CodeTrackDayTooAway          Code = "track_day_too_away"
	CodeTrackDayTooAwayExclusive Code = "track_day_too_away_exclusive"

	// Entry schema codes.
	CodeCommentsMissing         Code = "comments_missing"
	CodeCommentsTooShort        Code = "comments_too_short"
	CodeIssueMissing            Code = "issue_missing"
	CodeUnableTrackNewIssue     Code = "unable_track_new_issue"
	CodeUnableTrackClosedIssue  Code = "unable_track_closed_issue"
)

// Violation is a single policy rejection. Violations are returned as data,
// never raised as errors; any violation on a record means the mutation is
// rejected.
type Violation struct {
	Field Field
	Code  Code
}

// String returns the violation in field:code form.
func (v Violation) String() string {
	return fmt.Sprintf("%s:%s", v.Field, v.Code)
}

// Violations accumulates rule rejections over one evaluation pass.
type Violations []Violation

// Add appends a violation for the given field and code.
func (vs *Violations) Add(field Field, code Code) {
	*vs = append(*vs, Violation{Field: field, Code: code})
}

// Has reports whether a violation with the given field and code is present.
func (vs Violations) Has(field Field, code Code) bool {
	for _, v := range vs {
		if v.Field == field && v.Code == code {
			return true
		}
	}
	return false
}

// HasCode reports whether any violation carries the given code.
func (vs Violations) HasCode(code Code) bool {
	for _, v := range vs {
		if v.Code == code {
			return true
		}
	}
	return false
}

// Empty reports whether the record passed every rule.
func (vs Violations) Empty() bool {
	return len(vs) == 0
}
