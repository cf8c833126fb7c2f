package nipper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/nipper/reporterr"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  &Error{Op: "New", Kind: KindConfiguration},
			want: "nipper: New: configuration",
		},
		{
			name: "with cause",
			err:  NewParseError("Parser.Parse", errors.New("boom")),
			want: "nipper: Parser.Parse (parse): boom",
		},
		{
			name: "with context",
			err:  NewCacheError("Parser.Parse", errors.New("down")).WithContext(map[string]any{"key": "k"}),
			want: "nipper: Parser.Parse (cache): down [context: map[key:k]]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Is(t *testing.T) {
	cause := reporterr.New("SECURITYAUDIT", "locate", reporterr.CodeSectionNotFound, "missing")
	err := fmt.Errorf("wrapped: %w", NewParseError("Parser.Parse", cause))

	assert.True(t, errors.Is(err, ErrSectionNotFound))
	assert.False(t, errors.Is(err, ErrStructureMismatch))
	assert.True(t, errors.Is(err, &Error{Kind: KindParse}))
	assert.True(t, errors.Is(err, &Error{Kind: KindParse, Op: "Parser.Parse"}))
	assert.False(t, errors.Is(err, &Error{Kind: KindParse, Op: "New"}))
	assert.False(t, errors.Is(err, &Error{Kind: KindCache}))
	assert.Equal(t, reporterr.CodeSectionNotFound, Code(err))
	assert.Empty(t, Code(errors.New("plain")))

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindParse, perr.Kind)
}

func TestError_WithContextCopies(t *testing.T) {
	orig := NewCacheError("op", errors.New("x")).WithContext(map[string]any{"a": 1})
	derived := orig.WithContext(map[string]any{"b": 2})

	assert.Equal(t, map[string]any{"a": 1}, orig.Context)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, derived.Context)
}
