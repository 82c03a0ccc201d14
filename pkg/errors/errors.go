// Package errors provides structured error types for landscaper.
//
// Errors carry a machine-readable [Code] so callers can tell a per-reference
// failure (skip the reference, keep going) from a setup failure (abort the
// run) without matching on message text.
//
// # Error Codes
//
//   - CONFIG_MISSING: no credential configured for a provider
//   - INVALID_REFERENCE: a profile or repository URL has the wrong shape
//   - UPSTREAM_ERROR: non-success status, transport or decode failure
//   - CACHE_READ: a cache file exists but cannot be read or decoded
//   - CACHE_SETUP: the cache root cannot be resolved or created
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidReference, "invalid repository url: %s", url)
//	if errors.Is(err, errors.ErrCodeInvalidReference) {
//	    // skip this reference
//	}
//
//	err := errors.Wrap(errors.ErrCodeUpstream, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Per-reference failures: the reference is skipped, the run continues.
	ErrCodeConfigMissing    Code = "CONFIG_MISSING"
	ErrCodeInvalidReference Code = "INVALID_REFERENCE"
	ErrCodeUpstream         Code = "UPSTREAM_ERROR"
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeRateLimited      Code = "RATE_LIMITED"

	// Cache failures
	ErrCodeCacheRead  Code = "CACHE_READ"
	ErrCodeCacheSetup Code = "CACHE_SETUP"

	// Input and internal errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether err should abort the whole run rather than
// a single reference. Only cache setup failures are fatal.
func IsFatal(err error) bool {
	return Is(err, ErrCodeCacheSetup)
}

// RateLimitedError provides additional information for rate-limited responses.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
