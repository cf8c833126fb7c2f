package audit

import (
	"strings"
	"time"

	"github.com/zero-day-ai/nipper/finding"
	"github.com/zero-day-ai/nipper/mitigation"
	"github.com/zero-day-ai/nipper/section"
)

// Device is one audited device listed in the Information part.
type Device struct {
	Name            string `json:"name" yaml:"name"`
	Type            string `json:"type" yaml:"type"`
	OperatingSystem string `json:"os" yaml:"os"`
}

// Information is the report metadata.
type Information struct {
	Title   string   `json:"title" yaml:"title"`
	Author  string   `json:"author" yaml:"author"`
	Date    string   `json:"date" yaml:"date"`
	Version string   `json:"version" yaml:"version"`
	Devices []Device `json:"devices" yaml:"devices"`
}

// Introduction opens every part.
type Introduction struct {
	section.Ref `yaml:",inline"`

	// Date is the free-form audit date as written in the report.
	Date string `json:"date" yaml:"date"`

	Devices section.Table `json:"devices" yaml:"devices"`

	// Overview maps each overview item title to its text. Nil when absent.
	Overview section.Row `json:"overview" yaml:"overview,omitempty"`

	// RatingSummary maps each rating label to its description. Nil when absent.
	RatingSummary section.Row `json:"rating_summary" yaml:"rating_summary,omitempty"`
}

// Kind implements section.Section.
func (i *Introduction) Kind() section.Kind {
	return section.KindIntroduction
}

var dateLayouts = []string{
	"Monday, January 2, 2006",
	"Monday, 2 January 2006",
	"January 2, 2006",
	"2 January 2006",
	"Mon Jan 2 15:04:05 2006",
	"2006-01-02",
	"02/01/2006",
	time.RFC1123,
	time.RFC3339,
}

// DateTime parses Date. The second result is false when no known layout fits.
func (i *Introduction) DateTime() (time.Time, bool) {
	s := strings.TrimSpace(i.Date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CVE is one known vulnerability of the Vulnerability Audit part.
type CVE struct {
	section.Ref `yaml:",inline"`

	Rating           section.Row `json:"rating" yaml:"rating"`
	Summary          string      `json:"summary" yaml:"summary"`
	AffectedDevices  []string    `json:"affected_devices" yaml:"affected_devices"`
	VendorAdvisories []string    `json:"vendor_advisories" yaml:"vendor_advisories"`
	References       []string    `json:"references" yaml:"references"`
}

// Kind implements section.Section.
func (c *CVE) Kind() section.Kind {
	return section.KindCVE
}

// DetailsLayout tells which sub-layout a details block was read from.
type DetailsLayout string

const (
	// LayoutTable is a headings/tablebody table.
	LayoutTable DetailsLayout = "table"

	// LayoutList is a flat list of items.
	LayoutList DetailsLayout = "list"
)

// DetailsTable is one details block of an affected device.
// Table is set for LayoutTable, Items for LayoutList.
type DetailsTable struct {
	Layout DetailsLayout `json:"layout" yaml:"layout"`
	Table  section.Table `json:"table,omitempty" yaml:"table,omitempty"`
	Items  []string      `json:"items" yaml:"items,omitempty"`
}

// AffectedDevice is a device named by an observation.
type AffectedDevice struct {
	// Name is the title attribute of the device node, "" when absent.
	Name    string         `json:"name,omitempty" yaml:"name,omitempty"`
	Text    string         `json:"text" yaml:"text"`
	Details []DetailsTable `json:"details" yaml:"details,omitempty"`
}

// Observation is one filtering complexity finding.
type Observation struct {
	section.Ref `yaml:",inline"`

	Overview string           `json:"overview" yaml:"overview"`
	Devices  []AffectedDevice `json:"devices" yaml:"devices"`
}

// Kind implements section.Section.
func (o *Observation) Kind() section.Kind {
	return section.KindObservation
}

// Conclusion closes the audit parts.
type Conclusion struct {
	section.Ref `yaml:",inline"`

	PerDevice section.Table               `json:"per_device" yaml:"per_device"`
	PerRating map[finding.Rating][]string `json:"per_rating" yaml:"per_rating"`
}

// Kind implements section.Section.
func (c *Conclusion) Kind() section.Kind {
	return section.KindConclusion
}

// List returns the summaries listed under rating.
func (c *Conclusion) List(rating finding.Rating) []string {
	return c.PerRating[rating]
}

// Recommendations lists the remediation table of an audit part.
type Recommendations struct {
	section.Ref `yaml:",inline"`

	List section.Table `json:"list" yaml:"list"`
}

// Kind implements section.Section.
func (r *Recommendations) Kind() section.Kind {
	return section.KindRecommendations
}

// SecurityAudit is the Security Audit part.
type SecurityAudit struct {
	section.Ref `yaml:",inline"`

	Introduction    *Introduction              `json:"introduction" yaml:"introduction"`
	Findings        []*finding.Finding         `json:"findings" yaml:"findings"`
	Conclusion      *Conclusion                `json:"conclusion" yaml:"conclusion"`
	Recommendations *Recommendations           `json:"recommendations" yaml:"recommendations"`
	Mitigation      *mitigation.Classification `json:"mitigation" yaml:"mitigation"`
}

// Sections returns every section record in document order.
func (a *SecurityAudit) Sections() []section.Section {
	out := make([]section.Section, 0, len(a.Findings)+4)
	out = append(out, a.Introduction)
	for _, f := range a.Findings {
		out = append(out, f)
	}
	return append(out, a.Conclusion, a.Recommendations, a.Mitigation)
}

// Bind re-links the mitigation classification to Findings.
func (a *SecurityAudit) Bind() {
	if a.Mitigation != nil {
		a.Mitigation.Bind(a.Findings)
	}
}

// VulnerabilityAudit is the Vulnerability Audit part.
type VulnerabilityAudit struct {
	section.Ref `yaml:",inline"`

	Introduction    *Introduction    `json:"introduction" yaml:"introduction"`
	CVEs            []*CVE           `json:"cves" yaml:"cves"`
	Conclusion      *Conclusion      `json:"conclusion" yaml:"conclusion"`
	Recommendations *Recommendations `json:"recommendations" yaml:"recommendations"`
}

// Sections returns every section record in document order.
func (a *VulnerabilityAudit) Sections() []section.Section {
	out := make([]section.Section, 0, len(a.CVEs)+3)
	out = append(out, a.Introduction)
	for _, c := range a.CVEs {
		out = append(out, c)
	}
	return append(out, a.Conclusion, a.Recommendations)
}

// FilteringComplexity is the Filtering Complexity part.
type FilteringComplexity struct {
	section.Ref `yaml:",inline"`

	Introduction *Introduction  `json:"introduction" yaml:"introduction"`
	Observations []*Observation `json:"observations" yaml:"observations"`
}

// Sections returns every section record in document order.
func (a *FilteringComplexity) Sections() []section.Section {
	out := make([]section.Section, 0, len(a.Observations)+1)
	out = append(out, a.Introduction)
	for _, o := range a.Observations {
		out = append(out, o)
	}
	return out
}
