package office

import (
	"context"

	"worktime-control/internal/config"
	"worktime-control/internal/domain"
)

// Directory looks up the ERP office a user is assigned to.
type Directory interface {
	// OfficeFor returns the user's office, or nil when the user has none.
	OfficeFor(ctx context.Context, userID int64) (*domain.Office, error)
}

// Context resolves office data for record owners and applies the
// control-settings office rules.
type Context struct {
	directory Directory
}

// NewContext creates an office context over the given directory.
func NewContext(directory Directory) *Context {
	return &Context{directory: directory}
}

// Resolve returns the owner's office with its timezone mapping applied from
// the settings snapshot, or nil when the user has no office assignment.
func (c *Context) Resolve(ctx context.Context, userID int64, settings *config.Settings) (*domain.Office, error) {
	off, err := c.directory.OfficeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if off == nil {
		return nil, nil
	}
	if off.TimeZoneID == "" {
		off.TimeZoneID = settings.TimeZoneForOffice(off.OfficeID)
	}
	return off, nil
}

// ControlEnabledFor reports whether track control applies to the office:
// the global enable flag must be on and the office must be in the controlled
// list. A missing office is never controlled.
func ControlEnabledFor(settings *config.Settings, off *domain.Office) bool {
	if off == nil {
		return false
	}
	return settings.Enabled && settings.OfficeControlled(off.OfficeID)
}

// IsExclusive reports whether the acting user gets the widened correction
// window. Membership is checked for the acting user; the record owner's id
// does not participate in the decision.
func IsExclusive(settings *config.Settings, actingUserID, ownerUserID int64) bool {
	_ = ownerUserID
	return settings.UserExclusive(actingUserID)
}
