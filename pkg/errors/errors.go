// Package errors provides structured error types for bomstock.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the orchestrator and the
//     distributor clients
//   - Machine-readable error codes that the orchestrator uses to classify a
//     failed lookup
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes fall into three groups:
//   - Extraction failures: a record was fetched but could not be normalized
//     (NO_QUALIFYING_VARIATION, NO_RESULTS, MALFORMED_FIELD, PARSE_ERROR)
//   - Fetch failures: the distributor could not be reached or refused the
//     request (NOT_FOUND, NETWORK_ERROR, UNAUTHORIZED, API_ERROR, DECODE_ERROR)
//   - Setup failures: the run cannot start or cannot be written
//     (INVALID_CONFIG, INVALID_INPUT, FILE_NOT_FOUND, COLUMN_MISMATCH)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoQualifyingVariation, "no accepted package type among %d variations", n)
//	if errors.Is(err, errors.ErrCodeNoQualifyingVariation) {
//	    // Handle data absence
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, origErr, "price %q", raw)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Extraction errors
	ErrCodeNoQualifyingVariation Code = "NO_QUALIFYING_VARIATION"
	ErrCodeNoResults             Code = "NO_RESULTS"
	ErrCodeMalformedField        Code = "MALFORMED_FIELD"
	ErrCodeParse                 Code = "PARSE_ERROR"

	// Fetch errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeUnauthorized Code = "UNAUTHORIZED"
	ErrCodeAPI          Code = "API_ERROR"
	ErrCodeDecode       Code = "DECODE_ERROR"

	// Setup errors
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeColumnMismatch Code = "COLUMN_MISMATCH"
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

// UserMessage returns the error text without the code prefix of the
// innermost-wrapping *Error. Context added by outer wrappers and the
// underlying cause are kept. Other errors are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return strings.Replace(err.Error(), string(e.Code)+": ", "", 1)
	}
	return err.Error()
}

// IsExtraction reports whether err is one of the extraction codes, meaning
// a record was fetched but could not be normalized.
func IsExtraction(err error) bool {
	switch GetCode(err) {
	case ErrCodeNoQualifyingVariation, ErrCodeNoResults, ErrCodeMalformedField, ErrCodeParse:
		return true
	}
	return false
}
