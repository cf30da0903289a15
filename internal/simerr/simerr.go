// Package simerr defines the structured error type shared by the
// simulation engine packages.
//
// The engine reports failures as data: every public operation returns
// an *Error with a stable code and a human-readable message, and
// nothing in the core panics or terminates the process. Callers that
// only care about success can treat the value as a plain error;
// callers that branch on failure kind match on Code.
package simerr

import (
	"errors"
	"fmt"
)

// Code categorizes engine errors.
type Code string

const (
	// CodeInvalidFormat indicates a malformed date, time, duration
	// phrase, or identifier. Checked before any computation.
	CodeInvalidFormat Code = "INVALID_FORMAT"

	// CodeInvalidDuration indicates a non-positive advance request.
	CodeInvalidDuration Code = "INVALID_DURATION"

	// CodeDurationTooLarge indicates a duration over the one-week cap.
	// Long skips must be chained as multiple advances.
	CodeDurationTooLarge Code = "DURATION_TOO_LARGE"

	// CodeNotFound indicates an unknown event, NPC, or location id.
	// The snapshot is left unchanged.
	CodeNotFound Code = "NOT_FOUND"

	// CodeDuplicateEvent indicates an event id that already exists.
	CodeDuplicateEvent Code = "DUPLICATE_EVENT"

	// CodeInvalidStatus indicates a status outside the event status
	// enum, or a transition the lifecycle does not allow.
	CodeInvalidStatus Code = "INVALID_STATUS"

	// CodeUnsupportedRecurrence indicates a recurrence interval other
	// than daily, weekly, or monthly.
	CodeUnsupportedRecurrence Code = "UNSUPPORTED_RECURRENCE"

	// CodeUnexpected wraps an internal fault.
	CodeUnexpected Code = "UNEXPECTED"
)

// Error is the uniform failure value returned by engine operations.
type Error struct {
	Code    Code
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap converts an arbitrary error into an Error with CodeUnexpected.
// Errors that already carry a code pass through unchanged.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return &Error{Code: CodeUnexpected, Message: err.Error()}
}

// CodeOf extracts the code from an error, or CodeUnexpected if the
// error does not carry one.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeUnexpected
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == code
}
