package domain

import "time"

// Office is the ERP-side office a user is assigned to. Looked up once per
// evaluation and treated as read-only.
type Office struct {
	OfficeID      int64
	CorporationID int64
	TimeZoneID    string // IANA zone name, empty when the office has no mapping
}

// User is the minimal identity the engine needs about an actor or record owner.
type User struct {
	ID    int64
	Login string
}

// Holiday is a day flagged in an office's holiday calendar. Only paid-type
// holidays suppress a working day.
type Holiday struct {
	OfficeID int64
	Date     time.Time
	DayType  string
}

// DayTypePaid marks a holiday that counts against working days.
const DayTypePaid = "paid"

// ApprovalPeriodStatus is the settlement state of one office-month. A closed
// period freezes every record mutation inside it.
type ApprovalPeriodStatus struct {
	OfficeID      int64
	CorporationID int64
	Period        time.Time // first day of the month
	Closed        bool
}

// IssueStatus describes the workflow state of an issue.
type IssueStatus struct {
	ID       int64
	Name     string
	IsClosed bool
}

// Issue is the tracked issue a time record claims hours against.
type Issue struct {
	ID        int64
	ProjectID int64
	Subject   string
	Status    IssueStatus
}

// IssueStatusNew is the status name treated as "not yet started" by the
// per-project tracking guards.
const IssueStatusNew = "New"
