// Package errors provides the coded error type used across pkgprune.
//
// Every error that crosses a package boundary carries an ErrorCode so that
// callers and tests can branch on the category without matching messages.
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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigInvalid   ErrorCode = "CONFIG_INVALID"
	ErrRuleKeyInvalid  ErrorCode = "RULE_KEY_INVALID"
	ErrPatternInvalid  ErrorCode = "PATTERN_INVALID"
	ErrOverrideInvalid ErrorCode = "OVERRIDE_INVALID"

	// Path errors
	ErrPathOutsideBase ErrorCode = "PATH_OUTSIDE_BASE"
	ErrPathResolve     ErrorCode = "PATH_RESOLVE"
	ErrRemoveFailed    ErrorCode = "REMOVE_FAILED"

	// Project and package errors
	ErrInstallPath   ErrorCode = "INSTALL_PATH"
	ErrManifestRead  ErrorCode = "MANIFEST_READ"
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"
)

// configCodes lists the codes that classify as configuration errors.
var configCodes = map[ErrorCode]bool{
	ErrConfigInvalid:   true,
	ErrRuleKeyInvalid:  true,
	ErrPatternInvalid:  true,
	ErrOverrideInvalid: true,
}

// PruneError represents a structured error with code and details
type PruneError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PruneError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PruneError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PruneError) Is(target error) bool {
	var targetErr *PruneError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PruneError with the given code and message
func New(code ErrorCode, message string) *PruneError {
	return &PruneError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PruneError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PruneError {
	return &PruneError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PruneError
func Wrap(err error, code ErrorCode, message string) *PruneError {
	if err == nil {
		return nil
	}
	return &PruneError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PruneError {
	if err == nil {
		return nil
	}
	return &PruneError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PruneError) WithDetail(key string, value interface{}) *PruneError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pruneErr *PruneError
	if errors.As(err, &pruneErr) {
		return pruneErr.Code == code
	}
	return false
}

// IsConfigError reports whether err, or anything it wraps, is a
// configuration error.
func IsConfigError(err error) bool {
	for err != nil {
		var pruneErr *PruneError
		if !errors.As(err, &pruneErr) {
			return false
		}
		if configCodes[pruneErr.Code] {
			return true
		}
		err = pruneErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PruneError
func GetErrorCode(err error) ErrorCode {
	var pruneErr *PruneError
	if errors.As(err, &pruneErr) {
		return pruneErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PruneError
func GetErrorDetails(err error) map[string]interface{} {
	var pruneErr *PruneError
	if errors.As(err, &pruneErr) {
		return pruneErr.Details
	}
	return nil
}
