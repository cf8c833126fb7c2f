package finding

import (
	"fmt"
	"strings"
)

// Filter represents criteria for filtering findings.
type Filter struct {
	// Ratings filters by one or more ratings.
	Ratings []Rating `json:"ratings,omitempty" yaml:"ratings,omitempty"`

	// Devices filters by affected device name (at least one must match).
	Devices []string `json:"devices,omitempty" yaml:"devices,omitempty"`

	// TitleContains filters by a case-insensitive title substring.
	TitleContains string `json:"title_contains,omitempty" yaml:"title_contains,omitempty"`

	// Limit limits the number of results returned.
	Limit int `json:"limit,omitempty" yaml:"limit,omitempty"`

	// Offset skips the first N results.
	Offset int `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// Matches returns true if the given finding matches all filter criteria.
func (f *Filter) Matches(finding *Finding) bool {
	if len(f.Ratings) > 0 {
		rating := finding.Rating()
		matched := false
		for _, r := range f.Ratings {
			if r == rating {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Devices) > 0 {
		matched := false
		for _, want := range f.Devices {
			for _, name := range finding.DeviceNames() {
				if name == want {
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.TitleContains != "" &&
		!strings.Contains(strings.ToLower(finding.Title), strings.ToLower(f.TitleContains)) {
		return false
	}

	return true
}

// Apply returns the matching findings after Offset and Limit, preserving order.
func (f *Filter) Apply(findings []*Finding) []*Finding {
	var out []*Finding
	skipped := 0
	for _, finding := range findings {
		if !f.Matches(finding) {
			continue
		}
		if skipped < f.Offset {
			skipped++
			continue
		}
		out = append(out, finding)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

// Validate checks if the filter configuration is valid.
func (f *Filter) Validate() error {
	for _, r := range f.Ratings {
		if !r.IsValid() {
			return fmt.Errorf("invalid rating in filter: %s", r)
		}
	}

	if f.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}

	if f.Offset < 0 {
		return fmt.Errorf("offset cannot be negative")
	}

	return nil
}
