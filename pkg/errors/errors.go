package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Drop tracking errors
	ErrNotDropped     ErrorCode = "NOT_DROPPED"
	ErrUnexpectedDrop ErrorCode = "UNEXPECTED_DROP"
	ErrDoubleDrop     ErrorCode = "DOUBLE_DROP"
	ErrOutOfRange     ErrorCode = "OUT_OF_RANGE"
	ErrRegistryClosed ErrorCode = "REGISTRY_CLOSED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
)

// DropError represents a structured error with code and details.
// The registry panics with *DropError values, so a recovered panic can be
// inspected with the helpers below.
type DropError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DropError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DropError) Unwrap() error {
	return e.Wrapped
}

// Is matches any *DropError carrying the same code.
func (e *DropError) Is(target error) bool {
	var targetErr *DropError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DropError with the given code and message
func New(code ErrorCode, message string) *DropError {
	return &DropError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DropError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DropError {
	return &DropError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DropError
func Wrap(err error, code ErrorCode, message string) *DropError {
	if err == nil {
		return nil
	}
	return &DropError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DropError {
	if err == nil {
		return nil
	}
	return &DropError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DropError) WithDetail(key string, value interface{}) *DropError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dropErr *DropError
	if errors.As(err, &dropErr) {
		return dropErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DropError
func GetErrorCode(err error) ErrorCode {
	var dropErr *DropError
	if errors.As(err, &dropErr) {
		return dropErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DropError
func GetErrorDetails(err error) map[string]interface{} {
	var dropErr *DropError
	if errors.As(err, &dropErr) {
		return dropErr.Details
	}
	return nil
}

// FromPanic converts a recovered panic value into a *DropError.
// It returns nil when r is nil or carries no DropError.
func FromPanic(r interface{}) *DropError {
	err, ok := r.(error)
	if !ok {
		return nil
	}
	var dropErr *DropError
	if errors.As(err, &dropErr) {
		return dropErr
	}
	return nil
}
