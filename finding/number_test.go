package finding

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    Number
		wantErr bool
	}{
		{"3.2", Number{3, 2}, false},
		{"2.10", Number{2, 10}, false},
		{" 1.1 ", Number{1, 1}, false},
		{"0.0", Number{0, 0}, false},
		{"3", Number{}, true},
		{"3.x", Number{}, true},
		{"a.1", Number{}, true},
		{"1.2.3", Number{}, true},
		{"-1.2", Number{}, true},
		{"", Number{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNumber(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumber_ExactEquality(t *testing.T) {
	a, err := ParseNumber("2.10")
	require.NoError(t, err)
	b, err := ParseNumber("2.1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, a.Float(), b.Float(), "floats collide, which is why Number compares parts")
	assert.InDelta(t, 3.2, Number{3, 2}.Float(), 1e-9)
}

func TestNumber_Less(t *testing.T) {
	assert.True(t, Number{1, 2}.Less(Number{1, 10}))
	assert.True(t, Number{1, 10}.Less(Number{2, 1}))
	assert.False(t, Number{2, 1}.Less(Number{2, 1}))
}

func TestNumber_Text(t *testing.T) {
	data, err := json.Marshal(map[Number][]Number{{2, 3}: {{1, 1}, {1, 2}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"2.3":["1.1","1.2"]}`, string(data))

	var back map[Number][]Number
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []Number{{1, 1}, {1, 2}}, back[Number{2, 3}])

	var n Number
	assert.Error(t, n.UnmarshalText([]byte("nope")))
}
