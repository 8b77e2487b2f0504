// Package errors provides structured error types for GML decoding.
//
// Every failure produced while loading or parsing GML is an [*Error] carrying
// a machine-readable [Code] and, for parse failures, the token position at
// which the parser stopped. Codes let callers tell failure kinds apart
// without matching on message text:
//
//   - UNEXPECTED_EOF: the token stream ended while more input was required
//   - SYNTAX_ERROR: an expected keyword or bracket was not found
//   - ATTRIBUTE_NAME: an attribute name is not alphanumeric
//   - ATTRIBUTE_VALUE: a value is neither an integer nor a quoted string
//   - STRUCTURAL_ERROR: a missing, mistyped or duplicate id/source/target
//
// Codes outside the parser (IO_ERROR, INVALID_INPUT, ...) are used by the
// loading, rendering and serving layers.
//
// # Usage
//
//	g, err := gml.ParseString(src)
//	if errors.Is(err, errors.ErrCodeStructural) {
//	    pos, _ := errors.Position(err)
//	    // report the offending token
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes produced by the parser.
const (
	ErrCodeUnexpectedEOF  Code = "UNEXPECTED_EOF"
	ErrCodeSyntax         Code = "SYNTAX_ERROR"
	ErrCodeAttributeName  Code = "ATTRIBUTE_NAME"
	ErrCodeAttributeValue Code = "ATTRIBUTE_VALUE"
	ErrCodeStructural     Code = "STRUCTURAL_ERROR"
)

// Error codes produced around the parser.
const (
	ErrCodeIO            Code = "IO_ERROR"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
)

// NoPos marks an error that is not tied to a token position.
const NoPos = -1

// Error is a structured error with a code, an optional token position and
// an optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Pos     int    // Token index, or NoPos
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Pos >= 0 {
		msg = fmt.Sprintf("[pos %d] %s", e.Pos, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
// The error carries no position.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Pos:     NoPos,
	}
}

// NewAt creates a new Error located at token position pos.
func NewAt(code Code, pos int, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Pos:     NoPos,
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

// Position returns the token position recorded on err and whether one
// was recorded.
func Position(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e.Pos >= 0 {
		return e.Pos, true
	}
	return 0, false
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
