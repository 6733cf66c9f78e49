// Package errors provides structured error types for the banner pipeline.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes mirror the outcomes a banner request can have:
//   - INVALID_*: the caller supplied bad settings or an unknown format
//   - NOT_FOUND / UNSUPPORTED / UPSTREAM_UNAVAILABLE: the entity could not be resolved
//   - NOT_IMPLEMENTED: reserved banner types
//   - COMPOSITION_FAILURE: drawing or encoding failed
//
// UPSTREAM_UNAVAILABLE and UNSUPPORTED are kept apart from NOT_FOUND for
// logging, but [Kind] collapses them so callers see a single not-found outcome.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSettings, "missing setting %q", key)
//	if errors.Is(err, errors.ErrCodeInvalidSettings) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeUpstreamUnavailable, origErr, "fetch author %d", id)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidSettings Code = "INVALID_SETTINGS"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidType     Code = "INVALID_TYPE"

	// Resolution errors
	ErrCodeNotFound            Code = "NOT_FOUND"
	ErrCodeUnsupported         Code = "UNSUPPORTED"
	ErrCodeUpstreamUnavailable Code = "UPSTREAM_UNAVAILABLE"

	// Server-side errors
	ErrCodeNotImplemented     Code = "NOT_IMPLEMENTED"
	ErrCodeCompositionFailure Code = "COMPOSITION_FAILURE"
	ErrCodeInternal           Code = "INTERNAL_ERROR"
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

// Kind returns the caller-visible code for err. Upstream outages and
// unsupported backend combinations are reported as ErrCodeNotFound; errors
// without a code are internal.
func Kind(err error) Code {
	if err == nil {
		return ""
	}
	switch code := GetCode(err); code {
	case ErrCodeUpstreamUnavailable, ErrCodeUnsupported:
		return ErrCodeNotFound
	case "":
		return ErrCodeInternal
	default:
		return code
	}
}

// HTTPStatus maps the caller-visible kind of err to an HTTP status code.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case ErrCodeInvalidSettings, ErrCodeInvalidFormat, ErrCodeInvalidType:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
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
