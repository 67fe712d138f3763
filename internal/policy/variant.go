package policy

import "worktime-control/internal/domain"

// Variant parameterizes the rule battery for the two classes of actors.
// The variants share every rule; they differ only in how far back the free
// correction window reaches, which code a too-away rejection carries, and
// whether moving an already-past-month record is blocked outright.
type Variant struct {
	Name string

	// AllowedWorkdayGap is the number of working days between the spent-on day
	// and today that is still tolerated once the day is older than yesterday.
	AllowedWorkdayGap int

	// TooAwayCode is the violation code attached by the too-away rules.
	TooAwayCode domain.Code

	// RestrictPastMonthMove blocks changing the day of a record whose stored
	// day already lies before the current month.
	RestrictPastMonthMove bool
}

// Standard is the variant for regular employees: only today and yesterday may
// be edited freely.
var Standard = Variant{
	Name:                  "standard",
	AllowedWorkdayGap:     0,
	TooAwayCode:           domain.CodeTrackDayTooAway,
	RestrictPastMonthMove: true,
}

// Exclusive is the variant for designated users with a rolling five-working-day
// correction window. The past-month-move restriction does not apply to it.
var Exclusive = Variant{
	Name:                  "exclusive",
	AllowedWorkdayGap:     5,
	TooAwayCode:           domain.CodeTrackDayTooAwayExclusive,
	RestrictPastMonthMove: false,
}
