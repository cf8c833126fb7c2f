package finding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zero-day-ai/nipper/section"
)

// newFinding builds a valid finding for tests.
func newFinding(index, rating string, devices ...string) *Finding {
	n, err := ParseNumber(index)
	if err != nil {
		panic(err)
	}
	f := &Finding{
		Ref:    section.Ref{Index: index, Title: "Finding " + index, Key: "FINDING." + index},
		Number: n,
		Ratings: section.Row{
			{Name: "rating", Value: rating},
			{Name: "impact", Value: "High"},
			{Name: "ease", Value: "Easy"},
			{Name: "fix", Value: "Quick"},
		},
		Finding:        []string{"Paragraph one.", "Paragraph two."},
		Impact:         "An attacker could gain access.",
		Ease:           "Tools are available on the Internet.",
		Recommendation: "Disable the service.",
	}
	for _, d := range devices {
		f.AffectedDevices = append(f.AffectedDevices, section.Row{
			{Name: "name", Value: d},
			{Name: "type", Value: "Cisco Router"},
		})
	}
	return f
}

func TestFinding_Section(t *testing.T) {
	var s section.Section = newFinding("2.3", "High")
	assert.Equal(t, section.KindFinding, s.Kind())
	assert.Equal(t, "2.3", s.Identity().Index)
}

func TestFinding_Rating(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  Rating
	}{
		{"capitalized", "Critical", RatingCritical},
		{"lower", "low", RatingLow},
		{"info alias", "Info", RatingInformational},
		{"unknown", "Whatever", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newFinding("1.1", tt.value).Rating())
		})
	}

	assert.Equal(t, Rating(""), (&Finding{}).Rating())
}

func TestFinding_DeviceNames(t *testing.T) {
	f := newFinding("1.1", "High", "core-rtr", "edge-fw")
	f.AffectedDevices = append(f.AffectedDevices, section.Row{{Name: "type", Value: "Switch"}})
	assert.Equal(t, []string{"core-rtr", "edge-fw"}, f.DeviceNames())
}

func TestFinding_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *Finding)
		wantErr bool
	}{
		{"valid", func(f *Finding) {}, false},
		{"non numeric index", func(f *Finding) { f.Index = "A.1" }, true},
		{"number mismatch", func(f *Finding) { f.Number = Number{9, 9} }, true},
		{"three rating entries", func(f *Finding) { f.Ratings = f.Ratings[:3] }, true},
		{"unknown rating", func(f *Finding) { f.Ratings[0].Value = "Severe" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFinding("2.3", "High")
			tt.mutate(f)
			err := f.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	f11 := newFinding("1.1", "High")
	f12 := newFinding("1.2", "Low")
	f21 := newFinding("2.1", "Medium")
	dupA := newFinding("3.1", "Low")
	dupB := newFinding("3.1", "High")

	idx := NewIndex([]*Finding{f11, f12, f21, dupA, dupB, nil})
	assert.Equal(t, 4, idx.Len())

	got, ok := idx.Get(Number{1, 2})
	assert.True(t, ok)
	assert.Same(t, f12, got)

	_, ok = idx.Get(Number{9, 9})
	assert.False(t, ok)

	_, ok = idx.Get(Number{3, 1})
	assert.False(t, ok, "duplicates have no unique match")
	assert.Len(t, idx.Lookup(Number{3, 1}), 2)
	assert.Equal(t, []Number{{3, 1}}, idx.Duplicates())

	resolved := idx.Resolve([]Number{{2, 1}, {9, 9}, {1, 1}})
	assert.Equal(t, []*Finding{f21, f11}, resolved)

	var nilIdx *Index
	assert.Nil(t, nilIdx.Lookup(Number{1, 1}))
	assert.Equal(t, 0, nilIdx.Len())
	assert.Nil(t, nilIdx.Duplicates())
}

func TestFilter(t *testing.T) {
	findings := []*Finding{
		newFinding("1.1", "Critical", "core-rtr"),
		newFinding("1.2", "High", "edge-fw"),
		newFinding("1.3", "Critical", "edge-fw", "core-rtr"),
		newFinding("1.4", "Low"),
	}
	findings[1].Title = "Weak SNMP Community"

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty filter matches all", Filter{}, []string{"1.1", "1.2", "1.3", "1.4"}},
		{"by rating", Filter{Ratings: []Rating{RatingCritical}}, []string{"1.1", "1.3"}},
		{"by device", Filter{Devices: []string{"edge-fw"}}, []string{"1.2", "1.3"}},
		{"by title", Filter{TitleContains: "snmp"}, []string{"1.2"}},
		{"limit", Filter{Limit: 2}, []string{"1.1", "1.2"}},
		{"offset", Filter{Offset: 3}, []string{"1.4"}},
		{"combined", Filter{Ratings: []Rating{RatingCritical}, Devices: []string{"edge-fw"}}, []string{"1.3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, f := range tt.filter.Apply(findings) {
				got = append(got, f.Index)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_Validate(t *testing.T) {
	assert.NoError(t, (&Filter{Ratings: []Rating{RatingLow}}).Validate())
	assert.Error(t, (&Filter{Ratings: []Rating{"severe"}}).Validate())
	assert.Error(t, (&Filter{Limit: -1}).Validate())
	assert.Error(t, (&Filter{Offset: -1}).Validate())
}
