package reporterr

import (
	"fmt"
	"strings"
)

// Standard error codes.
const (
	// CodeSectionNotFound indicates a required section key is absent from the document
	CodeSectionNotFound = "SECTION_NOT_FOUND"

	// CodeStructureMismatch indicates a positional or table layout assumption was violated
	CodeStructureMismatch = "STRUCTURE_MISMATCH"

	// CodeMissingAttribute indicates an index, title or ref attribute is absent
	CodeMissingAttribute = "MISSING_ATTRIBUTE"

	// CodeUnresolvedReference indicates a cross-reference matched zero or several findings
	CodeUnresolvedReference = "UNRESOLVED_REFERENCE"

	// CodeParseError indicates the document bytes could not be parsed into a tree
	CodeParseError = "PARSE_ERROR"
)

// Error is a structured error for report extraction.
// It names the section and operation that failed, carries a standard
// code and can wrap an underlying error.
type Error struct {
	// Section is the reference key (or tag) of the node being parsed
	Section string

	// Operation is the parser step that failed (e.g. "locate", "table", "finding")
	Operation string

	// Code is a standard error code constant
	Code string

	// Message is a human-readable error message
	Message string

	// Details contains additional context as key-value pairs
	Details map[string]any

	// Cause is the underlying error that caused this error
	Cause error

	// Class tells whether the error aborts the report
	Class ErrorClass `json:"class,omitempty"`
}

// New creates a new structured error. The class defaults from the code.
//
// Example:
//
//	err := reporterr.New("SECURITYAUDIT", "locate", reporterr.CodeSectionNotFound,
//	    "no part or section with ref SECURITYAUDIT")
func New(section, operation, code, message string) *Error {
	return &Error{
		Section:   section,
		Operation: operation,
		Code:      code,
		Message:   message,
		Class:     DefaultClassForCode(code),
	}
}

// Newf is New with a formatted message.
func Newf(section, operation, code, format string, args ...any) *Error {
	return New(section, operation, code, fmt.Sprintf(format, args...))
}

// WithCause adds an underlying error to this error.
// This method returns the same error instance for method chaining.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithDetails adds additional context to this error.
// This method returns the same error instance for method chaining.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// WithClass overrides the error class.
func (e *Error) WithClass(class ErrorClass) *Error {
	e.Class = class
	return e
}

// Error implements the error interface.
// It formats the error as: "section [operation/code]: message: cause"
//
// Examples:
//   - "SECURITYAUDIT [locate/SECTION_NOT_FOUND]: no part or section with ref SECURITYAUDIT"
//   - "2.3 [finding/STRUCTURE_MISMATCH]: expected 6 children, found 4"
func (e *Error) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("%s [%s/%s]", e.Section, e.Operation, e.Code))

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is().
// Empty Section, Operation or Code fields on the target act as wildcards,
// which is how the package sentinels match any error of their code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != "" && e.Code != t.Code {
		return false
	}
	if t.Section != "" && e.Section != t.Section {
		return false
	}
	if t.Operation != "" && e.Operation != t.Operation {
		return false
	}
	return true
}

// As implements error type assertion for errors.As().
func (e *Error) As(target any) bool {
	t, ok := target.(**Error)
	if !ok {
		return false
	}
	*t = e
	return true
}

// Recoverable reports whether the error leaves the enclosing report usable.
func (e *Error) Recoverable() bool {
	return e.Class == ClassRecoverable
}

// Sentinel errors, one per code. Use with errors.Is.
var (
	ErrSectionNotFound     = &Error{Code: CodeSectionNotFound}
	ErrStructureMismatch   = &Error{Code: CodeStructureMismatch}
	ErrMissingAttribute    = &Error{Code: CodeMissingAttribute}
	ErrUnresolvedReference = &Error{Code: CodeUnresolvedReference}
	ErrMalformedDocument   = &Error{Code: CodeParseError}
)
