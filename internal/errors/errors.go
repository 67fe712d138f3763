package errors

import (
	"errors"
	"fmt"
)

// NewInvalidInputError creates a new invalid input error. Used for records
// that fail preconditions before the admission rules run (missing identifiers,
// negative hours, malformed dates).
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewExternalError creates an error for a failed call to an external
// collaborator (ERP API, cache).
func NewExternalError(system string, operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: fmt.Sprintf("%s call failed: %s", system, operation),
		Code:    "EXTERNAL_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"system":    system,
			"operation": operation,
		},
	}
}

// NewConfigurationError creates an error for unusable configuration.
func NewConfigurationError(setting string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: fmt.Sprintf("configuration invalid: %s", setting),
		Code:    "CONFIGURATION_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"setting": setting,
		},
	}
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// IsNotFound reports whether err represents a missing resource.
func IsNotFound(err error) bool {
	return IsErrorType(err, ErrorTypeNotFound)
}
