package office

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktime-control/internal/config"
	"worktime-control/internal/domain"
)

type fakeDirectory struct {
	offices map[int64]*domain.Office
}

func (f *fakeDirectory) OfficeFor(_ context.Context, userID int64) (*domain.Office, error) {
	return f.offices[userID], nil
}

func TestContext_Resolve(t *testing.T) {
	directory := &fakeDirectory{offices: map[int64]*domain.Office{
		1: {OfficeID: 10, CorporationID: 3},
		2: {OfficeID: 11, CorporationID: 3, TimeZoneID: "Asia/Tokyo"},
	}}
	officeContext := NewContext(directory)
	settings := &config.Settings{
		OfficeTimeZones: map[int64]string{10: "Europe/Moscow"},
	}

	t.Run("should apply the settings timezone mapping", func(t *testing.T) {
		off, err := officeContext.Resolve(context.Background(), 1, settings)
		require.NoError(t, err)
		require.NotNil(t, off)
		assert.Equal(t, "Europe/Moscow", off.TimeZoneID)
	})

	t.Run("should keep a directory-provided timezone", func(t *testing.T) {
		off, err := officeContext.Resolve(context.Background(), 2, settings)
		require.NoError(t, err)
		require.NotNil(t, off)
		assert.Equal(t, "Asia/Tokyo", off.TimeZoneID)
	})

	t.Run("should return nil for a user without an office", func(t *testing.T) {
		off, err := officeContext.Resolve(context.Background(), 99, settings)
		require.NoError(t, err)
		assert.Nil(t, off)
	})
}

func TestControlEnabledFor(t *testing.T) {
	tests := []struct {
		name     string
		settings *config.Settings
		office   *domain.Office
		expected bool
	}{
		{
			name:     "should be true for an enabled, controlled office",
			settings: &config.Settings{Enabled: true, ControlledOfficeIDs: []string{"10"}},
			office:   &domain.Office{OfficeID: 10},
			expected: true,
		},
		{
			name:     "should be false when the global flag is off",
			settings: &config.Settings{Enabled: false, ControlledOfficeIDs: []string{"10"}},
			office:   &domain.Office{OfficeID: 10},
			expected: false,
		},
		{
			name:     "should be false for an uncontrolled office",
			settings: &config.Settings{Enabled: true, ControlledOfficeIDs: []string{"11"}},
			office:   &domain.Office{OfficeID: 10},
			expected: false,
		},
		{
			name:     "should be false without an office",
			settings: &config.Settings{Enabled: true, ControlledOfficeIDs: []string{"10"}},
			office:   nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ControlEnabledFor(tt.settings, tt.office))
		})
	}
}

func TestIsExclusive(t *testing.T) {
	settings := &config.Settings{ExclusiveUserIDs: []string{"42"}}

	t.Run("should check the acting user", func(t *testing.T) {
		assert.True(t, IsExclusive(settings, 42, 7))
	})

	t.Run("should not consider the record owner", func(t *testing.T) {
		assert.False(t, IsExclusive(settings, 7, 42))
	})
}
