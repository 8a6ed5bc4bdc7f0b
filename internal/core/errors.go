package core

import "fmt"

// Error represents a structured error with code and optional cause.
// The analytical core never produces errors; these exist for the I/O
// edges (collectors, storage, config).
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Feed errors
	ErrFeedFailed      = &Error{Code: "FEED_FAILED", Message: "price feed request failed"}
	ErrFeedMalformed   = &Error{Code: "FEED_MALFORMED", Message: "price feed returned malformed data"}
	ErrFeedUnavailable = &Error{Code: "FEED_UNAVAILABLE", Message: "price feed unavailable"}

	// Storage errors
	ErrStorageFailed = &Error{Code: "STORAGE_FAILED", Message: "storage operation failed"}
	ErrNotFound      = &Error{Code: "NOT_FOUND", Message: "not found"}

	// Alert errors
	ErrAlertNotFound = &Error{Code: "ALERT_NOT_FOUND", Message: "alert not found"}
	ErrAlertInvalid  = &Error{Code: "ALERT_INVALID", Message: "alert is invalid"}

	// Input errors
	ErrInvalidInput = &Error{Code: "INVALID_INPUT", Message: "invalid input"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// Auth errors
	ErrUnauthorized = &Error{Code: "UNAUTHORIZED", Message: "missing or invalid API key"}
)
