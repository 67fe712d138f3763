package policy

import (
	"context"
	"time"

	"go.uber.org/zap"

	"worktime-control/internal/approval"
	"worktime-control/internal/calendar"
	"worktime-control/internal/config"
	"worktime-control/internal/domain"
	"worktime-control/internal/office"
)

// MaxHoursPerDay is the cap on the total hours a user may record against one
// calendar day.
const MaxHoursPerDay = 20.0

// HoursStore provides the persisted daily hour totals.
type HoursStore interface {
	// DailyHoursSum returns the sum of hours across all persisted records for
	// the user and day, including the record under evaluation when it is
	// persisted at that day.
	DailyHoursSum(ctx context.Context, userID int64, day time.Time) (float64, error)
}

// Evaluator runs the admission rule battery against a proposed record. It is
// a pure decision function over the record, the office, the settings snapshot
// and the evaluation clock; it never mutates the record or any store.
//
// Rules run in a fixed order and never short-circuit, so one pass surfaces
// every violated constraint.
type Evaluator struct {
	counter *calendar.WorkdayCounter
	oracle  *approval.Oracle
	hours   HoursStore
	logger  *zap.Logger
	now     func() time.Time
}

// NewEvaluator creates an evaluator over the given collaborators.
func NewEvaluator(counter *calendar.WorkdayCounter, oracle *approval.Oracle, hours HoursStore, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{
		counter: counter,
		oracle:  oracle,
		hours:   hours,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock returns a copy of the evaluator using the given clock. Used by
// tests to pin "today".
func (e *Evaluator) WithClock(now func() time.Time) *Evaluator {
	clone := *e
	clone.now = now
	return &clone
}

// Evaluate runs every applicable rule and returns the accumulated violations.
// An empty result means the mutation is admitted. Store failures surface as
// errors and abort the evaluation; policy rejections never do.
func (e *Evaluator) Evaluate(ctx context.Context, record *domain.TimeRecord, off *domain.Office, settings *config.Settings, variant Variant) (domain.Violations, error) {
	var violations domain.Violations

	// Settlement lock and the daily cap apply regardless of track control.
	closed, err := e.oracle.IsPeriodClosed(ctx, off, approval.PeriodsFor(record))
	if err != nil {
		return nil, err
	}
	if closed {
		violations.Add(domain.FieldBase, domain.CodeOfficeBlocked)
	}

	overtime, err := e.dailyHoursOvertime(ctx, record)
	if err != nil {
		return nil, err
	}
	if overtime {
		violations.Add(domain.FieldHours, domain.CodeInvalidSum)
	}

	if !office.ControlEnabledFor(settings, off) {
		e.logOutcome(record, variant, violations)
		return violations, nil
	}

	if record.SpentOn.IsZero() {
		// The remaining rules are all derived from the spent-on day.
		violations.Add(domain.FieldSpentOn, domain.CodeTrackDayMissing)
		e.logOutcome(record, variant, violations)
		return violations, nil
	}

	if !record.SpentOn.Before(e.tomorrowFor(off)) {
		violations.Add(domain.FieldSpentOn, domain.CodeTrackDayInFuture)
	}

	today := domain.DateOnly(e.now())
	tooAway, err := e.trackDayTooAway(ctx, off, record.SpentOn, today, variant.AllowedWorkdayGap)
	if err != nil {
		return nil, err
	}
	inMonth := domain.SameMonth(record.SpentOn, today)

	if tooAway && !inMonth {
		violations.Add(domain.FieldBase, domain.CodeInvalidCheckedDate)
	}
	if tooAway && inMonth && record.HoursIncreased() {
		if record.IsNew {
			violations.Add(domain.FieldBase, variant.TooAwayCode)
		} else {
			violations.Add(domain.FieldHours, domain.CodeHoursCanNotBeIncreased)
		}
	}
	if tooAway && inMonth && !record.IsNew && record.SpentOnChanged() {
		violations.Add(domain.FieldBase, variant.TooAwayCode)
	}
	if variant.RestrictPastMonthMove && !record.IsNew && !record.PreviousSpentOn.IsZero() &&
		record.PreviousSpentOn.Before(domain.BeginningOfMonth(today)) && record.SpentOnChanged() {
		violations.Add(domain.FieldBase, domain.CodeInvalidCheckedDate)
	}

	e.logOutcome(record, variant, violations)
	return violations, nil
}

// PeriodClosed reports whether the settlement period covering the record's
// current (and prior, if any) spent-on month is closed. Used by the destroy
// gate.
func (e *Evaluator) PeriodClosed(ctx context.Context, record *domain.TimeRecord, off *domain.Office) (bool, error) {
	return e.oracle.IsPeriodClosed(ctx, off, approval.PeriodsFor(record))
}

// dailyHoursOvertime checks the proposed total for the record's user and day
// against MaxHoursPerDay. For persisted records the stored hours are replaced
// by the proposed ones; new records add on top of the existing sum.
func (e *Evaluator) dailyHoursOvertime(ctx context.Context, record *domain.TimeRecord) (bool, error) {
	sum, err := e.hours.DailyHoursSum(ctx, record.UserID, record.SpentOn)
	if err != nil {
		return false, err
	}
	total := sum + record.Hours
	if !record.IsNew {
		total -= record.PreviousHours
	}
	return domain.Round2(total) > MaxHoursPerDay, nil
}

// trackDayTooAway decides whether the spent-on day lies outside the free-edit
// window. Today, yesterday and any future day are never too away; otherwise
// the working days strictly between the day and today must not exceed the
// variant's allowance.
func (e *Evaluator) trackDayTooAway(ctx context.Context, off *domain.Office, day, today time.Time, allowedGap int) (bool, error) {
	if day.After(today) || domain.SameDay(day, today) || domain.SameDay(day, domain.Yesterday(today)) {
		return false, nil
	}
	gap, err := e.counter.WorkingDaysBetween(ctx, off, day, today)
	if err != nil {
		return false, err
	}
	return gap > allowedGap, nil
}

// tomorrowFor returns the first rejected future day: tomorrow in the office's
// local calendar when a zone is mapped, otherwise in the process zone.
func (e *Evaluator) tomorrowFor(off *domain.Office) time.Time {
	tomorrow := e.now().AddDate(0, 0, 1)
	if off != nil && off.TimeZoneID != "" {
		if loc, err := time.LoadLocation(off.TimeZoneID); err == nil {
			tomorrow = tomorrow.In(loc)
		} else {
			e.logger.Warn("unknown office timezone", zap.String("zone", off.TimeZoneID), zap.Int64("office_id", off.OfficeID))
		}
	}
	return domain.DateOnly(tomorrow)
}

func (e *Evaluator) logOutcome(record *domain.TimeRecord, variant Variant, violations domain.Violations) {
	if violations.Empty() {
		return
	}
	codes := make([]string, len(violations))
	for i, v := range violations {
		codes[i] = v.String()
	}
	e.logger.Debug("time record rejected",
		zap.Int64("user_id", record.UserID),
		zap.String("variant", variant.Name),
		zap.Strings("violations", codes))
}
