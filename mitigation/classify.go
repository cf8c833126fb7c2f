package mitigation

import (
	"math"

	"github.com/zero-day-ai/nipper/finding"
	"github.com/zero-day-ai/nipper/parser"
	"github.com/zero-day-ai/nipper/reporterr"
	"github.com/zero-day-ai/nipper/section"
)

// Unresolved is a mitigation entry that did not resolve to exactly one finding.
type Unresolved struct {
	// Effort is the list the entry came from.
	Effort finding.FixingEffort `json:"effort" yaml:"effort"`

	// Entry is the raw list text.
	Entry string `json:"entry" yaml:"entry"`

	// Reference is the extracted section number text, "" when none was found.
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"`

	// Matches is the number of findings the reference matched.
	Matches int `json:"matches" yaml:"matches"`

	// Err is the recoverable UNRESOLVED_REFERENCE error.
	Err error `json:"-" yaml:"-"`
}

// Stat is the count and share of findings in one group.
type Stat struct {
	Count      int     `json:"count" yaml:"count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Statistics aggregates the classification.
type Statistics struct {
	// Total is the number of findings classified.
	Total int `json:"total" yaml:"total"`

	ByRating       map[finding.Rating]Stat       `json:"by_rating" yaml:"by_rating"`
	ByFixingEffort map[finding.FixingEffort]Stat `json:"by_fixing_effort" yaml:"by_fixing_effort"`

	// Undefined is set when Total is zero: every percentage is reported as 0.0
	// although the share is undefined.
	Undefined bool `json:"undefined,omitempty" yaml:"undefined,omitempty"`
}

// Classify resolves the mitigation lists against findings.
//
// Each list entry must embed a "<int>.<int>" section number matching exactly
// one finding. Entries that do not are returned as Unresolved and left out of
// ListBy and the fixing-effort statistics.
func Classify(findings []*finding.Finding, lists map[finding.FixingEffort][]string) (ListBy, Statistics, []Unresolved) {
	idx := finding.NewIndex(findings)
	listBy := ListBy{
		ByEffort: make(map[finding.FixingEffort][]finding.Number, len(finding.AllFixingEfforts())),
		ByRating: make(map[finding.Rating][]finding.Number, len(finding.AllRatings())),
		index:    idx,
	}

	var unresolved []Unresolved
	for _, effort := range finding.AllFixingEfforts() {
		numbers := []finding.Number{}
		for _, entry := range lists[effort] {
			n, u, ok := resolve(idx, effort, entry)
			if !ok {
				unresolved = append(unresolved, u)
				continue
			}
			numbers = append(numbers, n)
		}
		listBy.ByEffort[effort] = numbers
	}

	for _, rating := range finding.AllRatings() {
		listBy.ByRating[rating] = []finding.Number{}
	}
	for _, f := range findings {
		if f == nil {
			continue
		}
		rating := f.Rating()
		if !rating.IsValid() {
			continue
		}
		listBy.ByRating[rating] = append(listBy.ByRating[rating], f.Number)
	}

	return listBy, computeStatistics(len(findings), listBy), unresolved
}

func resolve(idx *finding.Index, effort finding.FixingEffort, entry string) (finding.Number, Unresolved, bool) {
	u := Unresolved{Effort: effort, Entry: entry}

	ref, ok := parser.FindReference(entry)
	if !ok {
		u.Err = reporterr.Newf(string(effort), "classify", reporterr.CodeUnresolvedReference,
			"entry %q has no section reference", entry)
		return finding.Number{}, u, false
	}
	u.Reference = ref

	n, err := finding.ParseNumber(ref)
	if err != nil {
		u.Err = reporterr.Newf(string(effort), "classify", reporterr.CodeUnresolvedReference,
			"entry %q: bad section reference", entry).WithCause(err)
		return finding.Number{}, u, false
	}

	matches := idx.Lookup(n)
	u.Matches = len(matches)
	switch len(matches) {
	case 1:
		return n, u, true
	case 0:
		u.Err = reporterr.Newf(string(effort), "classify", reporterr.CodeUnresolvedReference,
			"section %s matches no finding", ref).
			WithDetails(map[string]any{"entry": entry, "reference": ref})
	default:
		u.Err = reporterr.Newf(string(effort), "classify", reporterr.CodeUnresolvedReference,
			"section %s matches %d findings", ref, len(matches)).
			WithDetails(map[string]any{"entry": entry, "reference": ref, "matches": len(matches)})
	}
	return finding.Number{}, u, false
}

func computeStatistics(total int, listBy ListBy) Statistics {
	stats := Statistics{
		Total:          total,
		ByRating:       make(map[finding.Rating]Stat, len(listBy.ByRating)),
		ByFixingEffort: make(map[finding.FixingEffort]Stat, len(listBy.ByEffort)),
		Undefined:      total == 0,
	}
	for _, rating := range finding.AllRatings() {
		count := len(listBy.ByRating[rating])
		stats.ByRating[rating] = Stat{Count: count, Percentage: percentage(count, total)}
	}
	for _, effort := range finding.AllFixingEfforts() {
		count := len(listBy.ByEffort[effort])
		stats.ByFixingEffort[effort] = Stat{Count: count, Percentage: percentage(count, total)}
	}
	return stats
}

// percentage returns count/total*100 rounded to two decimals, 0 when total is 0.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return math.Round(float64(count)/float64(total)*100*100) / 100
}

// Classification is the Mitigation Classification section of a Security Audit.
type Classification struct {
	section.Ref `yaml:",inline"`

	ListBy     ListBy       `json:"list_by" yaml:"list_by"`
	Statistics Statistics   `json:"statistics" yaml:"statistics"`
	Unresolved []Unresolved `json:"unresolved" yaml:"unresolved,omitempty"`
}

// Kind implements section.Section.
func (c *Classification) Kind() section.Kind {
	return section.KindMitigationClassification
}

// Build classifies findings and wraps the result with the section identity.
func Build(ref section.Ref, findings []*finding.Finding, lists map[finding.FixingEffort][]string) *Classification {
	listBy, stats, unresolved := Classify(findings, lists)
	return &Classification{
		Ref:        ref,
		ListBy:     listBy,
		Statistics: stats,
		Unresolved: unresolved,
	}
}

// Bind points the classification at findings, e.g. after decoding a cached
// report. Unresolved entries are resolved again so their errors match the
// ones Build produced. Numbers that no longer resolve are dropped by the
// accessors.
func (c *Classification) Bind(findings []*finding.Finding) {
	idx := finding.NewIndex(findings)
	c.ListBy.index = idx
	for i, u := range c.Unresolved {
		_, c.Unresolved[i], _ = resolve(idx, u.Effort, u.Entry)
	}
}

// UnresolvedErrors returns the error of every unresolved entry.
func (c *Classification) UnresolvedErrors() []error {
	errs := make([]error, 0, len(c.Unresolved))
	for _, u := range c.Unresolved {
		errs = append(errs, u.Err)
	}
	return errs
}
