package audit

import (
	"io"
	"log/slog"

	"github.com/zero-day-ai/nipper/parser"
	"github.com/zero-day-ai/nipper/section"
)

// Keys holds the ref attribute values that address parts and their fixed
// sections.
type Keys struct {
	SecurityAudit           string `yaml:"security_audit"`
	SecurityIntroduction    string `yaml:"security_introduction"`
	SecurityConclusions     string `yaml:"security_conclusions"`
	SecurityRecommendations string `yaml:"security_recommendations"`
	SecurityMitigations     string `yaml:"security_mitigations"`

	VulnerabilityAudit           string `yaml:"vulnerability_audit"`
	VulnerabilityIntroduction    string `yaml:"vulnerability_introduction"`
	VulnerabilityConclusions     string `yaml:"vulnerability_conclusions"`
	VulnerabilityRecommendations string `yaml:"vulnerability_recommendations"`

	FilteringComplexity    string `yaml:"filtering_complexity"`
	ComplexityIntroduction string `yaml:"complexity_introduction"`
}

// DefaultKeys returns the keys written by Nipper Studio.
func DefaultKeys() Keys {
	return Keys{
		SecurityAudit:           "SECURITYAUDIT",
		SecurityIntroduction:    "SECURITY.INTRODUCTION",
		SecurityConclusions:     "SECURITY.CONCLUSIONS",
		SecurityRecommendations: "SECURITY.RECOMMENDATIONS",
		SecurityMitigations:     "SECURITY.MITIGATIONS",

		VulnerabilityAudit:           "VULNAUDIT",
		VulnerabilityIntroduction:    "VULNAUDIT.INTRODUCTION",
		VulnerabilityConclusions:     "VULNAUDIT.CONCLUSIONS",
		VulnerabilityRecommendations: "VULNAUDIT.RECOMMENDATIONS",

		FilteringComplexity:    "COMPLEXITY",
		ComplexityIntroduction: "COMPLEXITY.INTRODUCTION",
	}
}

// merge fills empty keys from d.
func (k Keys) merge(d Keys) Keys {
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Keys{
		SecurityAudit:                pick(k.SecurityAudit, d.SecurityAudit),
		SecurityIntroduction:         pick(k.SecurityIntroduction, d.SecurityIntroduction),
		SecurityConclusions:          pick(k.SecurityConclusions, d.SecurityConclusions),
		SecurityRecommendations:      pick(k.SecurityRecommendations, d.SecurityRecommendations),
		SecurityMitigations:          pick(k.SecurityMitigations, d.SecurityMitigations),
		VulnerabilityAudit:           pick(k.VulnerabilityAudit, d.VulnerabilityAudit),
		VulnerabilityIntroduction:    pick(k.VulnerabilityIntroduction, d.VulnerabilityIntroduction),
		VulnerabilityConclusions:     pick(k.VulnerabilityConclusions, d.VulnerabilityConclusions),
		VulnerabilityRecommendations: pick(k.VulnerabilityRecommendations, d.VulnerabilityRecommendations),
		FilteringComplexity:          pick(k.FilteringComplexity, d.FilteringComplexity),
		ComplexityIntroduction:       pick(k.ComplexityIntroduction, d.ComplexityIntroduction),
	}
}

// Options configures a Parser.
type Options struct {
	// Keys addresses parts and fixed sections. Empty keys take the defaults.
	Keys Keys

	// RowPolicy decides how ragged table rows are handled. Default: truncate.
	RowPolicy parser.RowPolicy

	// Logger receives warnings for truncated rows, list fallbacks and
	// unresolved references. Default: discard.
	Logger *slog.Logger

	// OnTruncated is called once per table that had ragged rows under
	// RowTruncate. Optional.
	OnTruncated func(ref section.Ref, table string, rows []section.TruncatedRow)
}

// Parser parses located parts into records.
type Parser struct {
	keys   Keys
	policy parser.RowPolicy
	logger *slog.Logger

	onTruncated func(section.Ref, string, []section.TruncatedRow)
}

// New creates a Parser.
func New(opts Options) *Parser {
	p := &Parser{
		keys:   opts.Keys.merge(DefaultKeys()),
		policy: opts.RowPolicy,
		logger: opts.Logger,

		onTruncated: opts.OnTruncated,
	}
	if !p.policy.IsValid() {
		p.policy = parser.RowTruncate
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p
}

// Keys returns the effective keys.
func (p *Parser) Keys() Keys {
	return p.keys
}
