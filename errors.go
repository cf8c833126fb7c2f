package nipper

import (
	"errors"
	"fmt"

	"github.com/zero-day-ai/nipper/reporterr"
)

// Sentinel errors for report parsing. The structural sentinels match any
// reporterr.Error with the same code.
var (
	ErrSectionNotFound     = reporterr.ErrSectionNotFound
	ErrStructureMismatch   = reporterr.ErrStructureMismatch
	ErrMissingAttribute    = reporterr.ErrMissingAttribute
	ErrUnresolvedReference = reporterr.ErrUnresolvedReference
	ErrMalformedDocument   = reporterr.ErrMalformedDocument

	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Error kinds categorize errors by their type.
const (
	// KindParse represents errors raised while building the report.
	KindParse = "parse"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindCache represents errors from the report cache.
	KindCache = "cache"
)

// Error wraps an underlying error with the operation that failed and the
// category of error. It supports errors.Is and errors.As.
type Error struct {
	// Op is the operation that failed (e.g., "Parser.Parse").
	Op string

	// Kind categorizes the error (e.g., KindParse).
	Kind string

	// Err is the underlying error.
	Err error

	// Context provides additional context about the error (optional).
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("nipper: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("nipper: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("nipper: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches an *Error target by Kind (and Op when set), then delegates to
// the underlying error.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a copy of the error with ctx merged into its context.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	newErr.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		newErr.Context[k] = v
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewParseError creates a new Error with KindParse.
func NewParseError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindParse, Err: err}
}

// NewConfigurationError creates a new Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConfiguration, Err: err}
}

// NewCacheError creates a new Error with KindCache.
func NewCacheError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindCache, Err: err}
}

// Code returns the reporterr code carried by err, or "" when err carries none.
func Code(err error) string {
	var rerr *reporterr.Error
	if errors.As(err, &rerr) {
		return rerr.Code
	}
	return ""
}
