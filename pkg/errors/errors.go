// Package errors provides structured error types for the morph toolkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Fatal codes mark a morphology as unusable for the current operation
// (INCONSISTENT_TOPOLOGY, DANGLING_PARENT, AMBIGUOUS_SOMA). Advisory
// codes (UNRESOLVED_SOMA, SOMA_PROTECTED) accompany an unchanged
// morphology; callers typically log them and continue.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDanglingParent, "node %d: parent %d not found", id, parent)
//	if errors.Is(err, errors.ErrCodeDanglingParent) {
//	    // Handle broken parent reference
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidSWC, origErr, "line %d", lineNum)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidSWC   Code = "INVALID_SWC"

	// Tree structure errors
	ErrCodeNodeNotFound         Code = "NODE_NOT_FOUND"
	ErrCodeDuplicateNode        Code = "DUPLICATE_NODE"
	ErrCodeDanglingParent       Code = "DANGLING_PARENT"
	ErrCodeCycle                Code = "CYCLE_DETECTED"
	ErrCodeInconsistentTopology Code = "INCONSISTENT_TOPOLOGY"

	// Soma resolution
	ErrCodeAmbiguousSoma  Code = "AMBIGUOUS_SOMA"
	ErrCodeUnresolvedSoma Code = "UNRESOLVED_SOMA"
	ErrCodeSomaProtected  Code = "SOMA_PROTECTED"

	// Calibration lookup
	ErrCodeCalibrationNotFound Code = "CALIBRATION_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// Is reports whether err carries the given error code.
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

// IsAdvisory reports whether err is a non-fatal diagnostic: the
// operation that returned it left its input unchanged and the
// returned morphology is still usable.
func IsAdvisory(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnresolvedSoma, ErrCodeSomaProtected:
		return true
	}
	return false
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
