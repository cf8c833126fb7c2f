package audit

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/zero-day-ai/nipper/finding"
	"github.com/zero-day-ai/nipper/mitigation"
	"github.com/zero-day-ai/nipper/parser"
)

// SecurityAudit locates and parses the Security Audit part. The part is one
// introduction, the findings, then conclusions, recommendations and the
// mitigation classification.
func (p *Parser) SecurityAudit(root *etree.Element) (*SecurityAudit, error) {
	k := p.keys
	node, ref, err := parser.Locate(root, k.SecurityAudit)
	if err != nil {
		return nil, err
	}
	parts, err := parser.Slice{
		Prefix: []string{k.SecurityIntroduction},
		Suffix: []string{k.SecurityConclusions, k.SecurityRecommendations, k.SecurityMitigations},
	}.Split(node)
	if err != nil {
		return nil, fmt.Errorf("security audit: %w", err)
	}

	a := &SecurityAudit{Ref: ref}
	if a.Introduction, err = p.Introduction(parts.Prefix[0]); err != nil {
		return nil, fmt.Errorf("security audit: %w", err)
	}
	a.Findings = make([]*finding.Finding, 0, len(parts.Body))
	for _, n := range parts.Body {
		f, err := p.Finding(n)
		if err != nil {
			return nil, fmt.Errorf("security audit: %w", err)
		}
		a.Findings = append(a.Findings, f)
	}
	if a.Conclusion, err = p.Conclusion(parts.Suffix[0]); err != nil {
		return nil, fmt.Errorf("security audit: %w", err)
	}
	if a.Recommendations, err = p.Recommendations(parts.Suffix[1]); err != nil {
		return nil, fmt.Errorf("security audit: %w", err)
	}

	mref, lists, err := p.MitigationLists(parts.Suffix[2])
	if err != nil {
		return nil, fmt.Errorf("security audit: %w", err)
	}
	a.Mitigation = mitigation.Build(mref, a.Findings, lists)

	if dups := finding.NewIndex(a.Findings).Duplicates(); len(dups) > 0 {
		p.logger.Warn("duplicate finding indices", "indices", fmt.Sprint(dups))
	}
	for _, u := range a.Mitigation.Unresolved {
		p.logger.Warn("unresolved mitigation entry",
			"effort", u.Effort,
			"entry", u.Entry,
			"reference", u.Reference,
			"matches", u.Matches)
	}
	if a.Mitigation.Statistics.Undefined {
		p.logger.Warn("no findings to classify, percentages reported as 0")
	}

	p.logger.Debug("parsed security audit",
		"findings", len(a.Findings),
		"unresolved", len(a.Mitigation.Unresolved))
	return a, nil
}

// VulnerabilityAudit locates and parses the Vulnerability Audit part: one
// introduction, the CVEs, then conclusions and recommendations.
func (p *Parser) VulnerabilityAudit(root *etree.Element) (*VulnerabilityAudit, error) {
	k := p.keys
	node, ref, err := parser.Locate(root, k.VulnerabilityAudit)
	if err != nil {
		return nil, err
	}
	parts, err := parser.Slice{
		Prefix: []string{k.VulnerabilityIntroduction},
		Suffix: []string{k.VulnerabilityConclusions, k.VulnerabilityRecommendations},
	}.Split(node)
	if err != nil {
		return nil, fmt.Errorf("vulnerability audit: %w", err)
	}

	a := &VulnerabilityAudit{Ref: ref}
	if a.Introduction, err = p.Introduction(parts.Prefix[0]); err != nil {
		return nil, fmt.Errorf("vulnerability audit: %w", err)
	}
	a.CVEs = make([]*CVE, 0, len(parts.Body))
	for _, n := range parts.Body {
		c, err := p.CVE(n)
		if err != nil {
			return nil, fmt.Errorf("vulnerability audit: %w", err)
		}
		a.CVEs = append(a.CVEs, c)
	}
	if a.Conclusion, err = p.Conclusion(parts.Suffix[0]); err != nil {
		return nil, fmt.Errorf("vulnerability audit: %w", err)
	}
	if a.Recommendations, err = p.Recommendations(parts.Suffix[1]); err != nil {
		return nil, fmt.Errorf("vulnerability audit: %w", err)
	}

	p.logger.Debug("parsed vulnerability audit", "cves", len(a.CVEs))
	return a, nil
}

// FilteringComplexity locates and parses the Filtering Complexity part: one
// introduction followed by observations.
func (p *Parser) FilteringComplexity(root *etree.Element) (*FilteringComplexity, error) {
	k := p.keys
	node, ref, err := parser.Locate(root, k.FilteringComplexity)
	if err != nil {
		return nil, err
	}
	parts, err := parser.Slice{Prefix: []string{k.ComplexityIntroduction}}.Split(node)
	if err != nil {
		return nil, fmt.Errorf("filtering complexity: %w", err)
	}

	a := &FilteringComplexity{Ref: ref}
	if a.Introduction, err = p.Introduction(parts.Prefix[0]); err != nil {
		return nil, fmt.Errorf("filtering complexity: %w", err)
	}
	a.Observations = make([]*Observation, 0, len(parts.Body))
	for _, n := range parts.Body {
		o, err := p.Observation(n)
		if err != nil {
			return nil, fmt.Errorf("filtering complexity: %w", err)
		}
		a.Observations = append(a.Observations, o)
	}

	p.logger.Debug("parsed filtering complexity", "observations", len(a.Observations))
	return a, nil
}
