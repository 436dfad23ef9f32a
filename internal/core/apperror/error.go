// Package apperror provides structured error handling for the report pipeline.
// Every fatal condition of a run is reported as an AppError so the CLI can
// print a descriptive message and exit without writing any output.
package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error codes
const (
	// Operator errors
	CodeMissingInput  = "MISSING_INPUT"
	CodeInvalidConfig = "INVALID_CONFIG"

	// Source data integrity
	CodeUnresolvedReference = "UNRESOLVED_REFERENCE"
	CodeMalformedInput      = "MALFORMED_INPUT"
	CodeCategoryCycle       = "CATEGORY_CYCLE"

	// Post-processing
	CodeMalformedDate = "MALFORMED_DATE"

	// Infrastructure
	CodeIO       = "IO_ERROR"
	CodeInternal = "INTERNAL_ERROR"
)

// AppError is the standard error type for the pipeline.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (table, row, offending value, ...)
	Details map[string]any `json:"details,omitempty"`

	// Err is the underlying error
	Err error `json:"-"`
}

// Error implements error interface.
// Details are rendered in key order so messages are stable.
func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(e.Code)
	b.WriteString(": ")
	b.WriteString(e.Message)

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString(" [")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.Details[k])
		}
		b.WriteString("]")
	}

	if e.Err != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions ---

// NewMissingInput is returned when no export path was supplied.
func NewMissingInput() *AppError {
	return &AppError{
		Code:    CodeMissingInput,
		Message: "pass the location of the catalog export XML to run",
	}
}

// NewUnresolvedReference is returned when a foreign key has no matching row
// in its target table.
func NewUnresolvedReference(table, ref string, from any) *AppError {
	return &AppError{
		Code:    CodeUnresolvedReference,
		Message: fmt.Sprintf("%s reference %q does not resolve", table, ref),
		Details: map[string]any{"table": table, "ref": ref, "from": from},
	}
}

// NewMalformedInput is returned when a source row lacks a required attribute.
func NewMalformedInput(table string, row int, message string) *AppError {
	return &AppError{
		Code:    CodeMalformedInput,
		Message: message,
		Details: map[string]any{"table": table, "row": row},
	}
}

// NewCategoryCycle is returned when parent links loop back on themselves.
func NewCategoryCycle(path []string) *AppError {
	return &AppError{
		Code:    CodeCategoryCycle,
		Message: "category parent links form a cycle",
		Details: map[string]any{"cycle": strings.Join(path, " -> ")},
	}
}

// NewMalformedDate is returned when a sort key cell is not a DD/MM/YYYY date.
func NewMalformedDate(row, column int, value string) *AppError {
	return &AppError{
		Code:    CodeMalformedDate,
		Message: fmt.Sprintf("expected DD/MM/YYYY date, got %q", value),
		Details: map[string]any{"row": row, "column": column},
	}
}

// NewInvalidConfig creates a configuration error.
func NewInvalidConfig(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidConfig,
		Message: message,
	}
}

// NewIO wraps a filesystem or decoding failure.
func NewIO(op, path string, err error) *AppError {
	return &AppError{
		Code:    CodeIO,
		Message: fmt.Sprintf("%s %s", op, path),
		Err:     err,
	}
}

// NewInternal creates an internal error
func NewInternal(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

// --- Helper functions ---

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode checks whether the error chain carries an AppError with the code.
func IsCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// ExitCode maps an error to a process exit status.
// Operator mistakes exit with 2, data and I/O failures with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Code {
		case CodeMissingInput, CodeInvalidConfig:
			return 2
		}
	}
	return 1
}
