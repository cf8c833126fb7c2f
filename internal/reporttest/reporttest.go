// Package reporttest builds synthetic Nipper XML reports for tests.
package reporttest

import (
	"fmt"
	"html"
	"strings"
)

// Finding describes one generated finding section.
type Finding struct {
	Index   string
	Title   string
	Key     string
	Rating  string
	Devices []string
}

// CVE describes one generated CVE section.
type CVE struct {
	Index   string
	ID      string
	Rating  string
	Devices []string
}

// Observation describes one generated filtering complexity observation.
type Observation struct {
	Index string
	Title string
	// ListDetails renders the device details block as a flat list instead of a table.
	ListDetails bool
}

// Options controls the generated report.
type Options struct {
	Findings     []Finding
	Quick        []string
	Planned      []string
	Involved     []string
	CVEs         []CVE
	Observations []Observation

	// SecurityBeforeSuffix is raw XML inserted between the last finding and
	// the conclusions of the Security Audit part.
	SecurityBeforeSuffix []string

	// SecurityAfterSuffix is raw XML appended after the mitigation section.
	SecurityAfterSuffix []string

	// RaggedDeviceRow adds a device table row with one missing cell to
	// every introduction.
	RaggedDeviceRow bool

	// OmitParts lists part keys left out of the report.
	OmitParts []string
}

// Default returns options for a small complete report: findings 1.1, 1.2 and
// 2.1 rated critical, high and low, one CVE and two observations.
func Default() Options {
	return Options{
		Findings: []Finding{
			{Index: "1.1", Title: "Telnet Enabled", Key: "FILTER.TELNET", Rating: "Critical", Devices: []string{"fw1"}},
			{Index: "1.2", Title: "Weak Passwords", Key: "AUTH.WEAK", Rating: "High", Devices: []string{"fw1", "sw1"}},
			{Index: "2.1", Title: "No Banner", Key: "BANNER.NONE", Rating: "Low", Devices: []string{"sw1"}},
		},
		Quick:    []string{"See section 1.2 for details"},
		Planned:  []string{"Disable Telnet (see 1.1)"},
		Involved: []string{"Configure a banner, section 2.1"},
		CVEs: []CVE{
			{Index: "3.2", ID: "CVE-2019-0001", Rating: "High", Devices: []string{"fw1"}},
		},
		Observations: []Observation{
			{Index: "4.2", Title: "Rules Allow Any Source"},
			{Index: "4.3", Title: "Disabled Rules", ListDetails: true},
		},
	}
}

// Document renders the whole report.
func (o Options) Document() []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<document nipperstudio="2.6.2" xmlversion="2" xmlrevision="3">`)
	b.WriteString(Information())
	b.WriteString(`<report>`)
	if !o.omitted("SECURITYAUDIT") {
		b.WriteString(o.SecurityAudit())
	}
	if !o.omitted("VULNAUDIT") {
		b.WriteString(o.VulnerabilityAudit())
	}
	if !o.omitted("COMPLEXITY") {
		b.WriteString(o.FilteringComplexity())
	}
	b.WriteString(`</report></document>`)
	return []byte(b.String())
}

func (o Options) omitted(key string) bool {
	for _, k := range o.OmitParts {
		if k == key {
			return true
		}
	}
	return false
}

// Information renders the information element.
func Information() string {
	return `<information>` +
		`<title>Nipper Studio Report</title>` +
		`<author>Network Auditor</author>` +
		`<date>Monday, March 4, 2019</date>` +
		`<generator><product>Nipper Studio</product><vendor>Titania</vendor>` +
		`<url>https://www.titania.com</url><version>2.6.2</version></generator>` +
		`<devices>` +
		`<device name="fw1" type="Cisco ASA" os="9.1"/>` +
		`<device name="sw1" type="Cisco Catalyst" os="15.0"/>` +
		`</devices>` +
		`</information>`
}

// SecurityAudit renders the Security Audit part.
func (o Options) SecurityAudit() string {
	var b strings.Builder
	b.WriteString(`<part index="1" title="Security Audit" ref="SECURITYAUDIT">`)
	b.WriteString(Introduction("1.0", "SECURITY.INTRODUCTION", o.RaggedDeviceRow))
	for _, f := range o.Findings {
		b.WriteString(FindingSection(f))
	}
	for _, x := range o.SecurityBeforeSuffix {
		b.WriteString(x)
	}
	b.WriteString(Conclusion("1.90", "SECURITY.CONCLUSIONS"))
	b.WriteString(Recommendations("1.91", "SECURITY.RECOMMENDATIONS"))
	b.WriteString(Mitigation("1.92", "SECURITY.MITIGATIONS", o.Quick, o.Planned, o.Involved))
	for _, x := range o.SecurityAfterSuffix {
		b.WriteString(x)
	}
	b.WriteString(`</part>`)
	return b.String()
}

// VulnerabilityAudit renders the Vulnerability Audit part.
func (o Options) VulnerabilityAudit() string {
	var b strings.Builder
	b.WriteString(`<part index="3" title="Vulnerability Audit" ref="VULNAUDIT">`)
	b.WriteString(Introduction("3.1", "VULNAUDIT.INTRODUCTION", o.RaggedDeviceRow))
	for _, c := range o.CVEs {
		b.WriteString(CVESection(c))
	}
	b.WriteString(Conclusion("3.90", "VULNAUDIT.CONCLUSIONS"))
	b.WriteString(Recommendations("3.91", "VULNAUDIT.RECOMMENDATIONS"))
	b.WriteString(`</part>`)
	return b.String()
}

// FilteringComplexity renders the Filtering Complexity part.
func (o Options) FilteringComplexity() string {
	var b strings.Builder
	b.WriteString(`<part index="4" title="Filtering Complexity" ref="COMPLEXITY">`)
	b.WriteString(Introduction("4.1", "COMPLEXITY.INTRODUCTION", o.RaggedDeviceRow))
	for _, obs := range o.Observations {
		b.WriteString(ObservationSection(obs))
	}
	b.WriteString(`</part>`)
	return b.String()
}

// Table renders a headings/tablebody table.
func Table(headings []string, rows ...[]string) string {
	var b strings.Builder
	b.WriteString(`<table><headings>`)
	for _, h := range headings {
		fmt.Fprintf(&b, `<heading>%s</heading>`, esc(h))
	}
	b.WriteString(`</headings><tablebody>`)
	for _, r := range rows {
		b.WriteString(`<tablerow>`)
		for _, c := range r {
			fmt.Fprintf(&b, `<tablecell><item>%s</item></tablecell>`, esc(c))
		}
		b.WriteString(`</tablerow>`)
	}
	b.WriteString(`</tablebody></table>`)
	return b.String()
}

// List renders a flat list.
func List(items ...string) string {
	var b strings.Builder
	b.WriteString(`<list>`)
	for _, it := range items {
		fmt.Fprintf(&b, `<listitem>%s</listitem>`, esc(it))
	}
	b.WriteString(`</list>`)
	return b.String()
}

// Introduction renders an introduction section.
func Introduction(index, key string, ragged bool) string {
	rows := [][]string{
		{"Cisco ASA", "fw1", "9.1"},
		{"Cisco Catalyst", "sw1", "15.0"},
	}
	if ragged {
		rows = append(rows, []string{"Juniper SRX", "srx1"})
	}
	return fmt.Sprintf(`<section index="%s" title="Introduction" ref="%s">`, index, key) +
		`<text>Monday, March 4, 2019</text>` +
		Table([]string{"Device", "Name", "OS Version"}, rows...) +
		`<list><listitem>The following issues were identified:</listitem>` +
		`<listitem title="Critical">1 critical issue</listitem>` +
		`<listitem title="High">1 high issue</listitem></list>` +
		`<section title="Rating"><text>Ratings</text><text>Each issue is rated.</text>` +
		Table([]string{"Rating", "Description"},
			[]string{"Critical", "Immediate risk"},
			[]string{"High", "Significant risk"}) +
		`</section>` +
		`</section>`
}

// FindingSection renders one finding.
func FindingSection(f Finding) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<section index="%s" title="%s" ref="%s">`, f.Index, esc(f.Title), f.Key)
	b.WriteString(`<issuedetails><devices>`)
	for _, d := range f.Devices {
		fmt.Fprintf(&b, `<device name="%s" type="Cisco" osversion="9.1"/>`, esc(d))
	}
	b.WriteString(`</devices><ratings>`)
	fmt.Fprintf(&b, `<rating>%s</rating><impact>High</impact><ease>Easy</ease><fix>Quick</fix>`, esc(f.Rating))
	b.WriteString(`</ratings></issuedetails>`)
	fmt.Fprintf(&b, `<section title="Summary"><text>%s summary</text></section>`, esc(f.Title))
	fmt.Fprintf(&b, `<section title="Finding"><text>%s was observed.</text><text>Second paragraph.</text><text>Third paragraph.</text></section>`, esc(f.Title))
	b.WriteString(`<section title="Impact"><text>An attacker could gain access.</text></section>`)
	b.WriteString(`<section title="Ease"><text>Tools are widely available.</text></section>`)
	b.WriteString(`<section title="Recommendation"><text>Apply the fix.</text></section>`)
	b.WriteString(`</section>`)
	return b.String()
}

// CVESection renders one CVE.
func CVESection(c CVE) string {
	return fmt.Sprintf(`<section index="%s" title="%s" ref="VULN.%s">`, c.Index, c.ID, c.ID) +
		fmt.Sprintf(`<ratings><rating>%s</rating><cvssv2>7.5</cvssv2></ratings>`, esc(c.Rating)) +
		fmt.Sprintf(`<section title="Summary"><text>%s allows remote code execution.</text></section>`, c.ID) +
		`<section title="Affected Devices"><text>Devices:</text>` + List(c.Devices...) + `</section>` +
		`<section title="Vendor Security Advisories"><text>Advisories:</text>` + List("cisco-sa-2019-0001") + `</section>` +
		`<section title="References"><text>References:</text>` + List("https://nvd.nist.gov/vuln/detail/"+c.ID) + `</section>` +
		`</section>`
}

// ObservationSection renders one observation with a single affected device.
func ObservationSection(o Observation) string {
	details := Table([]string{"Rule", "Action"}, []string{"10", "permit any"})
	if o.ListDetails {
		details = List("rule 20 disabled", "rule 21 disabled")
	}
	return fmt.Sprintf(`<section index="%s" title="%s" ref="COMPLEXITY.%s">`, o.Index, esc(o.Title), strings.ReplaceAll(o.Index, ".", "_")) +
		fmt.Sprintf(`<text>%s overview</text>`, esc(o.Title)) +
		`<section title="fw1"><text>fw1 is affected.</text>` + details + `</section>` +
		`</section>`
}

// Conclusion renders a conclusions section.
func Conclusion(index, key string) string {
	return fmt.Sprintf(`<section index="%s" title="Conclusions" ref="%s">`, index, key) +
		`<text>Per device</text>` +
		Table([]string{"Device", "Name", "Issues", "Highest Rating"},
			[]string{"Cisco ASA", "fw1", "2", "Critical"},
			[]string{"Cisco Catalyst", "sw1", "2", "High"}) +
		`<text>Critical</text>` + List("Telnet Enabled") +
		`<text>High</text>` + List("Weak Passwords") +
		`<text>Medium</text>` + List() +
		`<text>Low</text>` + List("No Banner") +
		`<text>Informational</text>` + List() +
		`</section>`
}

// Recommendations renders a recommendations section.
func Recommendations(index, key string) string {
	return fmt.Sprintf(`<section index="%s" title="Recommendations" ref="%s">`, index, key) +
		`<text>Recommendations</text>` +
		Table([]string{"Issue", "Rating", "Recommendation"},
			[]string{"Telnet Enabled", "Critical", "Disable Telnet"},
			[]string{"Weak Passwords", "High", "Set strong passwords"}) +
		`</section>`
}

// Mitigation renders a mitigation classification section.
func Mitigation(index, key string, quick, planned, involved []string) string {
	return fmt.Sprintf(`<section index="%s" title="Mitigation Classification" ref="%s">`, index, key) +
		`<text>Quick</text>` + List(quick...) +
		`<text>Planned</text>` + List(planned...) +
		`<text>Involved</text>` + List(involved...) +
		`</section>`
}

func esc(s string) string {
	return html.EscapeString(s)
}
