package nipper

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/zero-day-ai/nipper/audit"
	"github.com/zero-day-ai/nipper/finding"
)

// reportNamespace scopes the name-based report IDs.
var reportNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/zero-day-ai/nipper/report"))

// reportID derives the report ID from the document digest.
func reportID(digest string) uuid.UUID {
	return uuid.NewSHA1(reportNamespace, []byte(digest))
}

// Report is the typed model of one Nipper report. Parts disabled in the
// configuration are nil.
type Report struct {
	// ID is derived from Digest, so identical documents share an ID.
	ID uuid.UUID `json:"id" yaml:"id"`

	// Digest is the hex SHA-256 of the document bytes.
	Digest string `json:"digest" yaml:"digest"`

	Information         *audit.Information         `json:"information" yaml:"information"`
	SecurityAudit       *audit.SecurityAudit       `json:"security_audit,omitempty" yaml:"security_audit,omitempty"`
	VulnerabilityAudit  *audit.VulnerabilityAudit  `json:"vulnerability_audit,omitempty" yaml:"vulnerability_audit,omitempty"`
	FilteringComplexity *audit.FilteringComplexity `json:"filtering_complexity,omitempty" yaml:"filtering_complexity,omitempty"`
}

// Findings returns the Security Audit findings matching filter.
// Returns nil when the Security Audit part was not parsed.
func (r *Report) Findings(filter finding.Filter) []*finding.Finding {
	if r.SecurityAudit == nil {
		return nil
	}
	return filter.Apply(r.SecurityAudit.Findings)
}

// QueryFindings returns the findings for which the CEL expression holds.
//
// Example:
//
//	critical, err := report.QueryFindings(`rating == "critical" && "fw1" in devices`)
func (r *Report) QueryFindings(expr string) ([]*finding.Finding, error) {
	q, err := finding.NewQuery(expr)
	if err != nil {
		return nil, err
	}
	if r.SecurityAudit == nil {
		return nil, nil
	}
	return q.Select(r.SecurityAudit.Findings)
}

// ExportFindings writes the findings in the given format.
func (r *Report) ExportFindings(w io.Writer, format finding.ExportFormat) error {
	if !format.IsValid() {
		return fmt.Errorf("invalid export format: %s", format)
	}
	var findings []*finding.Finding
	if r.SecurityAudit != nil {
		findings = r.SecurityAudit.Findings
	}
	return finding.Export(w, format, findings)
}

// bind restores the links a decoded report loses.
func (r *Report) bind() {
	if r.SecurityAudit != nil {
		r.SecurityAudit.Bind()
	}
}
