package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTimeRecord_SpentOnChanged(t *testing.T) {
	tests := []struct {
		name     string
		record   TimeRecord
		expected bool
	}{
		{
			name: "should be false for new records",
			record: TimeRecord{
				IsNew:   true,
				SpentOn: day(2024, time.March, 5),
			},
			expected: false,
		},
		{
			name: "should be false when previous value is unknown",
			record: TimeRecord{
				ID:      1,
				SpentOn: day(2024, time.March, 5),
			},
			expected: false,
		},
		{
			name: "should be false when the day is unchanged",
			record: TimeRecord{
				ID:              1,
				SpentOn:         day(2024, time.March, 5),
				PreviousSpentOn: day(2024, time.March, 5),
			},
			expected: false,
		},
		{
			name: "should be true when the day moved",
			record: TimeRecord{
				ID:              1,
				SpentOn:         day(2024, time.March, 5),
				PreviousSpentOn: day(2024, time.March, 4),
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.SpentOnChanged())
		})
	}
}

func TestTimeRecord_HoursIncreased(t *testing.T) {
	tests := []struct {
		name     string
		hours    float64
		previous float64
		isNew    bool
		expected bool
	}{
		{
			name:     "should be true when hours grow",
			hours:    8.1,
			previous: 8.0,
			expected: true,
		},
		{
			name:     "should be false when hours shrink",
			hours:    7.9,
			previous: 8.0,
			expected: false,
		},
		{
			name:     "should be false when hours are unchanged",
			hours:    8.0,
			previous: 8.0,
			expected: false,
		},
		{
			name:     "should ignore sub-cent increases",
			hours:    8.004,
			previous: 8.0,
			expected: false,
		},
		{
			name:     "should count any positive hours on a new record",
			hours:    0.5,
			isNew:    true,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := TimeRecord{
				Hours:         tt.hours,
				PreviousHours: tt.previous,
				IsNew:         tt.isNew,
			}
			assert.Equal(t, tt.expected, record.HoursIncreased())
		})
	}
}

func TestNewTimeRecord(t *testing.T) {
	record := NewTimeRecord(7, time.Date(2024, time.March, 5, 15, 30, 0, 0, time.Local))

	assert.True(t, record.IsNew)
	assert.Equal(t, int64(7), record.UserID)
	assert.Equal(t, day(2024, time.March, 5), record.SpentOn)
}
