// Package errors provides structured error types for xformgraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the graph, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Structural graph errors are raised synchronously by mutation APIs
// (add, delete, connect) when a precondition is violated:
//   - XFORM_EXISTS, NO_SUCH_XFORM: node lookups
//   - NO_SUCH_OUTPUT_PORT, NO_SUCH_INPUT_PORT, PORTS_INCOMPATIBLE: wiring
//   - GRAPH_HAS_CYCLE: a connection would make the graph cyclic
//   - GENERAL_FAILURE: anything else
//
// Per-node apply failures are not errors of this package; see the Status
// taxonomy in package xform.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoSuchXform, "no such xform: %s", name)
//	if errors.Is(err, errors.ErrCodeNoSuchXform) {
//	    // Handle lookup failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDocument, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Graph structure errors
	ErrCodeGeneralFailure    Code = "GENERAL_FAILURE"
	ErrCodeXformExists       Code = "XFORM_EXISTS"
	ErrCodeNoSuchXform       Code = "NO_SUCH_XFORM"
	ErrCodeNoSuchOutputPort  Code = "NO_SUCH_OUTPUT_PORT"
	ErrCodeNoSuchInputPort   Code = "NO_SUCH_INPUT_PORT"
	ErrCodePortsIncompatible Code = "PORTS_INCOMPATIBLE"
	ErrCodeGraphHasCycle     Code = "GRAPH_HAS_CYCLE"

	// Factory and configuration errors
	ErrCodeUnknownType   Code = "UNKNOWN_XFORM_TYPE"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Input validation errors
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidName     Code = "INVALID_NAME"
	ErrCodeInvalidPortRef  Code = "INVALID_PORT_REF"
	ErrCodeInvalidKey      Code = "INVALID_KEY"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// userMessages holds the fixed sentences shown to users for graph errors.
var userMessages = map[Code]string{
	ErrCodeGeneralFailure:    "Failed.",
	ErrCodeXformExists:       "A transform with that name already exists in the graph.",
	ErrCodeNoSuchXform:       "No such transform in graph.",
	ErrCodeNoSuchOutputPort:  "No output port with that name exists on the transform.",
	ErrCodeNoSuchInputPort:   "No input port with that name exists on the transform.",
	ErrCodePortsIncompatible: "The ports being connected are incompatible.",
	ErrCodeGraphHasCycle:     "The connection would create a cycle in the graph.",
}

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
// Graph structure codes map to fixed sentences; other *Error values return
// their message without the code prefix; plain errors are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if msg, ok := userMessages[e.Code]; ok {
			return msg
		}
		return e.Message
	}
	return err.Error()
}
