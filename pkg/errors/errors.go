// Package errors provides structured error types for snakecodec.
//
// Every failure raised by a transform, store or command carries a
// machine-readable [Code] so that the CLI and the HTTP API can tell a
// malformed Morse string apart from blank input without string matching.
//
// # Error Codes
//
// The transform codes mirror the decode taxonomy:
//   - EMPTY_INPUT: blank or whitespace-only input given to a decode
//   - INVALID_FORMAT: input does not have the shape the codec requires
//   - OUT_OF_RANGE: a numeric parameter falls outside its allowed interval
//
// The remaining codes cover lookups, policy limits and internal failures.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "token %q is not 8 binary digits", tok)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // show the user what went wrong
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "base64 decode")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Transform errors
	ErrCodeEmptyInput    Code = "EMPTY_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeOutOfRange    Code = "OUT_OF_RANGE"

	// Request errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeUnknownTransform Code = "UNKNOWN_TRANSFORM"
	ErrCodeTextTooLong      Code = "TEXT_TOO_LONG"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

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
// Only the outermost *Error in the chain is consulted.
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

// Empty is shorthand for the EMPTY_INPUT error raised by decoders.
func Empty(transform string) *Error {
	return New(ErrCodeEmptyInput, "%s: input is empty", transform)
}

// Format is shorthand for an INVALID_FORMAT error attributed to a transform.
func Format(transform, format string, args ...any) *Error {
	return New(ErrCodeInvalidFormat, "%s: %s", transform, fmt.Sprintf(format, args...))
}
