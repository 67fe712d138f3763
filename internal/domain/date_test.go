package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOnly(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	stamp := time.Date(2024, time.March, 5, 23, 45, 12, 0, loc)

	assert.Equal(t, day(2024, time.March, 5), DateOnly(stamp))
}

func TestSameMonth(t *testing.T) {
	tests := []struct {
		name     string
		a, b     time.Time
		expected bool
	}{
		{
			name:     "should match days in the same month",
			a:        day(2024, time.March, 1),
			b:        day(2024, time.March, 31),
			expected: true,
		},
		{
			name:     "should reject days in different months",
			a:        day(2024, time.March, 31),
			b:        day(2024, time.April, 1),
			expected: false,
		},
		{
			name:     "should reject the same month of a different year",
			a:        day(2023, time.March, 5),
			b:        day(2024, time.March, 5),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SameMonth(tt.a, tt.b))
		})
	}
}

func TestBeginningOfMonth(t *testing.T) {
	assert.Equal(t, day(2024, time.February, 1), BeginningOfMonth(day(2024, time.February, 29)))
}

func TestEndOfMonth(t *testing.T) {
	assert.Equal(t, day(2024, time.February, 29), EndOfMonth(day(2024, time.February, 10)))
	assert.Equal(t, day(2024, time.April, 30), EndOfMonth(day(2024, time.April, 1)))
}

func TestYesterday(t *testing.T) {
	assert.Equal(t, day(2024, time.February, 29), Yesterday(day(2024, time.March, 1)))
}
