package nipper

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/nipper/finding"
	"github.com/zero-day-ai/nipper/internal/reporttest"
)

func parseDefault(t *testing.T) *Report {
	t.Helper()
	r, err := Parse(reporttest.Default().Document())
	require.NoError(t, err)
	return r
}

func TestReport_Findings(t *testing.T) {
	r := parseDefault(t)

	all := r.Findings(finding.Filter{})
	assert.Len(t, all, 3)

	high := r.Findings(finding.Filter{Ratings: []finding.Rating{finding.RatingHigh}})
	require.Len(t, high, 1)
	assert.Equal(t, "1.2", high[0].Index)

	sw1 := r.Findings(finding.Filter{Devices: []string{"sw1"}})
	assert.Len(t, sw1, 2)

	assert.Nil(t, (&Report{}).Findings(finding.Filter{}))
}

func TestReport_QueryFindings(t *testing.T) {
	r := parseDefault(t)

	got, err := r.QueryFindings(`rating == "critical" || (major == 2 && "sw1" in devices)`)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1.1", got[0].Index)
	assert.Equal(t, "2.1", got[1].Index)

	_, err = r.QueryFindings(`rating +`)
	require.Error(t, err)

	none, err := (&Report{}).QueryFindings(`true`)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestReport_ExportFindings(t *testing.T) {
	r := parseDefault(t)

	var buf bytes.Buffer
	require.NoError(t, r.ExportFindings(&buf, finding.FormatCSV))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "1.1,Telnet Enabled"))

	buf.Reset()
	require.NoError(t, (&Report{}).ExportFindings(&buf, finding.FormatJSON))
	assert.JSONEq(t, `[]`, buf.String())

	assert.Error(t, r.ExportFindings(&buf, finding.ExportFormat("pdf")))
}
