// Package errors provides the coded error type shared by every grime package.
//
// Each failure the image engine can report carries a machine-readable Code so
// callers (the script session, the MCP server, the CLI) can decide whether a
// failed operation aborts the run or is reported and skipped.
//
// # Error Codes
//
//   - INVALID_SHAPE: empty or non-rectangular pixel grid
//   - INVALID_KERNEL: kernel missing, non-square or even-sized
//   - INVALID_TRANSFORM: color transform matrix not 3x3
//   - UNKNOWN_COMPONENT: unrecognized channel selector
//   - INVALID_SEED_COUNT: mosaic with zero or negative seeds
//   - INVALID_ARGUMENT: malformed combine inputs or codec input
//   - NOT_GREYSCALE: a combine input is not single-channel
//   - UNKNOWN_OPERATION: operation name not recognized
//   - NOT_FOUND: no image stored under the requested name
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidKernel, "kernel side %d is even", n)
//	if errors.Is(err, errors.ErrCodeInvalidKernel) {
//	    // handle
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the image engine and its orchestration layer.
const (
	ErrCodeInvalidShape     Code = "INVALID_SHAPE"
	ErrCodeInvalidKernel    Code = "INVALID_KERNEL"
	ErrCodeInvalidTransform Code = "INVALID_TRANSFORM"
	ErrCodeUnknownComponent Code = "UNKNOWN_COMPONENT"
	ErrCodeInvalidSeedCount Code = "INVALID_SEED_COUNT"
	ErrCodeInvalidArgument  Code = "INVALID_ARGUMENT"
	ErrCodeNotGreyscale     Code = "NOT_GREYSCALE"

	ErrCodeUnknownOperation Code = "UNKNOWN_OPERATION"
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeInternal         Code = "INTERNAL_ERROR"
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
// It unwraps the error chain looking for an *Error with a matching code, so
// an INVALID_ARGUMENT wrapping an INVALID_SHAPE matches both codes.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
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
