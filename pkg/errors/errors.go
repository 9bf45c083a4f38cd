// Package errors provides structured error types for laneplot.
//
// Every failure the layout engine can report carries a machine-readable
// [Code], so the CLI, the HTTP API, and library callers can branch on the
// category without matching message text.
//
// # Error Codes
//
//   - DEGENERATE_SCHEDULE: empty schedule, or zero time or row extent
//   - INVALID_INTERVAL: finish before begin, negative or non-finite times
//   - LANE_OUT_OF_RANGE: negative lane, or a lane missing from the profile
//   - INVALID_*: other input validation failures
//   - NOT_FOUND: a stored chart does not exist
//   - INTERNAL_ERROR: unexpected failures (I/O, encoding, backends)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInterval, "task %q finishes before it begins", label)
//	if errors.Is(err, errors.ErrCodeInvalidInterval) {
//	    // reject the schedule
//	}
//
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout engine errors
	ErrCodeDegenerateSchedule Code = "DEGENERATE_SCHEDULE"
	ErrCodeInvalidInterval    Code = "INVALID_INTERVAL"
	ErrCodeLaneOutOfRange     Code = "LANE_OUT_OF_RANGE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsInputError reports whether err was caused by the caller's input rather
// than by the system. Input errors recur identically on retry.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeDegenerateSchedule, ErrCodeInvalidInterval, ErrCodeLaneOutOfRange,
		ErrCodeInvalidInput, ErrCodeInvalidFormat:
		return true
	}
	return false
}
