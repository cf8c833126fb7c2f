package finding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuery(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{"rating equality", `rating == "high"`, false},
		{"device membership", `"core-rtr" in devices`, false},
		{"rating record lookup", `ratings["fix"] == "Quick"`, false},
		{"number parts", `major == 2 && minor > 1`, false},
		{"syntax error", `rating ==`, true},
		{"unknown variable", `severity == "high"`, true},
		{"non bool result", `title`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuery(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expr, q.String())
		})
	}
}

func TestQuery_Select(t *testing.T) {
	findings := []*Finding{
		newFinding("2.1", "Critical", "core-rtr"),
		newFinding("2.2", "High", "edge-fw"),
		newFinding("2.3", "High", "core-rtr", "edge-fw"),
		newFinding("3.1", "Low"),
	}

	tests := []struct {
		expr string
		want []string
	}{
		{`rating == "high"`, []string{"2.2", "2.3"}},
		{`"core-rtr" in devices`, []string{"2.1", "2.3"}},
		{`major == 2 && minor >= 2`, []string{"2.2", "2.3"}},
		{`size(devices) == 0`, []string{"3.1"}},
		{`ratings["fix"] == "Quick" && rating != "low"`, []string{"2.1", "2.2", "2.3"}},
		{`title.startsWith("Finding 3")`, []string{"3.1"}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			q, err := NewQuery(tt.expr)
			require.NoError(t, err)

			got, err := q.Select(findings)
			require.NoError(t, err)

			var indices []string
			for _, f := range got {
				indices = append(indices, f.Index)
			}
			assert.Equal(t, tt.want, indices)
		})
	}
}

func TestQuery_Match(t *testing.T) {
	q, err := NewQuery(`rating == "informational"`)
	require.NoError(t, err)

	ok, err := q.Match(newFinding("1.1", "Info"))
	require.NoError(t, err)
	assert.True(t, ok)
}
