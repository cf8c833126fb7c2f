package reporterr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		wantClass ErrorClass
	}{
		{"section not found is fatal", CodeSectionNotFound, ClassFatal},
		{"structure mismatch is fatal", CodeStructureMismatch, ClassFatal},
		{"missing attribute is fatal", CodeMissingAttribute, ClassFatal},
		{"parse error is fatal", CodeParseError, ClassFatal},
		{"unresolved reference is recoverable", CodeUnresolvedReference, ClassRecoverable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New("SECURITYAUDIT", "locate", tt.code, "message")

			assert.Equal(t, "SECURITYAUDIT", err.Section)
			assert.Equal(t, "locate", err.Operation)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, "message", err.Message)
			assert.Equal(t, tt.wantClass, err.Class)
			assert.Equal(t, tt.wantClass == ClassRecoverable, err.Recoverable())
			assert.Nil(t, err.Cause)
			assert.Nil(t, err.Details)
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  New("SECURITYAUDIT", "locate", CodeSectionNotFound, "no part or section with ref SECURITYAUDIT"),
			want: "SECURITYAUDIT [locate/SECTION_NOT_FOUND]: no part or section with ref SECURITYAUDIT",
		},
		{
			name: "with cause",
			err:  New("2.3", "finding", CodeStructureMismatch, "bad index").WithCause(errors.New("not a number")),
			want: "2.3 [finding/STRUCTURE_MISMATCH]: bad index: not a number",
		},
		{
			name: "empty message",
			err:  New("table", "extract", CodeStructureMismatch, ""),
			want: "table [extract/STRUCTURE_MISMATCH]",
		},
		{
			name: "formatted",
			err:  Newf("2.1", "introduction", CodeStructureMismatch, "expected %d children, found %d", 2, 1),
			want: "2.1 [introduction/STRUCTURE_MISMATCH]: expected 2 children, found 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_IsSentinel(t *testing.T) {
	err := New("SECURITY.CONCLUSIONS", "conclusion", CodeStructureMismatch, "offset 3 missing")
	wrapped := fmt.Errorf("security audit: %w", err)

	assert.True(t, errors.Is(wrapped, ErrStructureMismatch))
	assert.False(t, errors.Is(wrapped, ErrSectionNotFound))
	assert.False(t, errors.Is(wrapped, ErrMissingAttribute))
	assert.False(t, errors.Is(wrapped, ErrUnresolvedReference))

	assert.True(t, errors.Is(wrapped, &Error{Section: "SECURITY.CONCLUSIONS", Code: CodeStructureMismatch}))
	assert.False(t, errors.Is(wrapped, &Error{Section: "SECURITY.RECOMMENDATIONS", Code: CodeStructureMismatch}))
	assert.False(t, errors.Is(wrapped, errors.New("other")))
}

func TestError_UnwrapAndAs(t *testing.T) {
	cause := errors.New("XML syntax error on line 3")
	err := New("document", "load", CodeParseError, "malformed document").WithCause(cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrMalformedDocument))

	var rerr *Error
	require.True(t, errors.As(fmt.Errorf("wrap: %w", err), &rerr))
	assert.Equal(t, "load", rerr.Operation)
	assert.Equal(t, CodeParseError, rerr.Code)
}

func TestError_WithDetailsAndClass(t *testing.T) {
	err := New("2.3", "classify", CodeStructureMismatch, "msg").
		WithDetails(map[string]any{"offset": 3}).
		WithClass(ClassRecoverable)

	assert.Equal(t, 3, err.Details["offset"])
	assert.True(t, err.Recoverable())
}

func TestDefaultClassForCode_Unknown(t *testing.T) {
	assert.Equal(t, ClassFatal, DefaultClassForCode("SOMETHING_ELSE"))
	assert.Equal(t, "recoverable", ClassRecoverable.String())
}
