package finding

import (
	"fmt"

	"github.com/zero-day-ai/nipper/section"
)

// RatingEntries is the number of entries in a finding's rating record.
const RatingEntries = 4

// Finding represents one issue of the Security Audit part.
type Finding struct {
	section.Ref `yaml:",inline"`

	// Number is the numeric form of Index, used to resolve cross-references.
	Number Number `json:"number" yaml:"number"`

	// AffectedDevices holds the attributes of each affected device, in document order.
	AffectedDevices []section.Row `json:"affected_devices" yaml:"affected_devices"`

	// Ratings is the four-entry rating record. Entry names are taken from the
	// document; entry 0 is the rating itself.
	Ratings section.Row `json:"ratings" yaml:"ratings"`

	// Finding holds the opening paragraphs describing the issue.
	Finding []string `json:"finding" yaml:"finding"`

	// Impact describes the consequence of the issue.
	Impact string `json:"impact" yaml:"impact"`

	// Ease describes how easily the issue can be exploited.
	Ease string `json:"ease" yaml:"ease"`

	// Recommendation describes the remediation.
	Recommendation string `json:"recommendation" yaml:"recommendation"`
}

// Kind implements section.Section.
func (f *Finding) Kind() section.Kind {
	return section.KindFinding
}

// Rating returns the parsed value of the first rating entry.
// Returns "" when the entry is missing or not a known rating.
func (f *Finding) Rating() Rating {
	if len(f.Ratings) == 0 {
		return ""
	}
	r, err := ParseRating(f.Ratings[0].Value)
	if err != nil {
		return ""
	}
	return r
}

// DeviceNames returns the name attribute of every affected device.
func (f *Finding) DeviceNames() []string {
	names := make([]string, 0, len(f.AffectedDevices))
	for _, d := range f.AffectedDevices {
		if name, ok := d.Get("name"); ok {
			names = append(names, name)
		}
	}
	return names
}

// Validate checks the invariants every parsed finding satisfies.
func (f *Finding) Validate() error {
	n, err := ParseNumber(f.Index)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	if n != f.Number {
		return fmt.Errorf("number %s does not match index %q", f.Number, f.Index)
	}
	if len(f.Ratings) != RatingEntries {
		return fmt.Errorf("rating record has %d entries, want %d", len(f.Ratings), RatingEntries)
	}
	if !f.Rating().IsValid() {
		return fmt.Errorf("unknown rating %q", f.Ratings[0].Value)
	}
	return nil
}
