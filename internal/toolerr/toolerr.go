// Package toolerr defines the error taxonomy for the tool-call boundary.
//
// Every expected failure (validation, file write, rate limit) is represented
// as an *Error carrying a stable code and a human-readable message. Handlers
// convert these into MCP error results instead of letting them propagate —
// internal errors never crash the server or leak filesystem details.
package toolerr

import (
	"errors"
	"fmt"
)

// Code identifies a failure category at the tool-call boundary.
type Code string

const (
	InvalidType        Code = "InvalidType"
	InvalidLength      Code = "InvalidLength"
	InvalidFormat      Code = "InvalidFormat"
	EmptyCriteria      Code = "EmptyCriteria"
	CriterionTooLong   Code = "CriterionTooLong"
	DescriptionTooLong Code = "DescriptionTooLong"
	InvalidPath        Code = "InvalidPath"
	InvalidExtension   Code = "InvalidExtension"
	FileTooLarge       Code = "FileTooLarge"
	RateLimitExceeded  Code = "RateLimitExceeded"
	InvalidArgs        Code = "InvalidArgs"
	Unknown            Code = "UnknownError"
)

// Error is a coded failure suitable for returning to the MCP host.
type Error struct {
	Code    Code
	Message string
}

// Error formats as "<Code>: <message>" so the code survives the trip
// through mcp.NewToolResultError.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates a coded error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the code from err, unwrapping as needed.
// Non-coded errors map to Unknown.
func CodeOf(err error) Code {
	var te *Error
	if errors.As(err, &te) {
		return te.Code
	}
	return Unknown
}
