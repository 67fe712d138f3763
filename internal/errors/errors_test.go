package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "should format error without cause",
			err:      NewNotFoundError("office", "42"),
			expected: "not_found: office not found: 42",
		},
		{
			name:     "should include cause when present",
			err:      NewDatabaseError("load statuses", errors.New("connection reset")),
			expected: "database: database operation failed: load statuses (caused by: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewExternalError("erp", "fetch employees", cause)

	assert.ErrorIs(t, err, cause)
}

func TestIsErrorType(t *testing.T) {
	err := NewInvalidInputError("hours", -1.0, "must not be negative")

	assert.True(t, IsErrorType(err, ErrorTypeInvalidInput))
	assert.False(t, IsErrorType(err, ErrorTypeDatabase))
	assert.False(t, IsErrorType(errors.New("plain"), ErrorTypeInvalidInput))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("record", "7")))
	assert.False(t, IsNotFound(NewDatabaseError("query", nil)))
}

func TestAsAppError_Wrapped(t *testing.T) {
	inner := NewConfigurationError("office_time_zones", errors.New("bad zone"))
	wrapped := fmt.Errorf("loading settings: %w", inner)

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrorTypeConfiguration, appErr.Type)
}
