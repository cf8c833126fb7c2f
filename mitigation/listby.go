package mitigation

import "github.com/zero-day-ai/nipper/finding"

// ListBy groups findings by fixing effort and by rating. Groups hold section
// numbers; the accessors resolve them against the findings the
// classification was built from.
type ListBy struct {
	ByEffort map[finding.FixingEffort][]finding.Number `json:"by_fixing_effort" yaml:"by_fixing_effort"`
	ByRating map[finding.Rating][]finding.Number       `json:"by_rating" yaml:"by_rating"`

	index *finding.Index
}

// FixingEffort returns the findings classified under effort, in list order.
func (l ListBy) FixingEffort(effort finding.FixingEffort) []*finding.Finding {
	return l.index.Resolve(l.ByEffort[effort])
}

// Rating returns the findings with the given rating, in document order.
// Findings sharing a section number are all returned.
func (l ListBy) Rating(rating finding.Rating) []*finding.Finding {
	var out []*finding.Finding
	seen := make(map[finding.Number]bool)
	for _, n := range l.ByRating[rating] {
		if seen[n] {
			continue
		}
		seen[n] = true
		for _, f := range l.index.Lookup(n) {
			if f.Rating() == rating {
				out = append(out, f)
			}
		}
	}
	return out
}

// Quick returns the quick-fix findings.
func (l ListBy) Quick() []*finding.Finding { return l.FixingEffort(finding.EffortQuick) }

// Planned returns the findings that need a planned change.
func (l ListBy) Planned() []*finding.Finding { return l.FixingEffort(finding.EffortPlanned) }

// Involved returns the findings that need involved work.
func (l ListBy) Involved() []*finding.Finding { return l.FixingEffort(finding.EffortInvolved) }

// Bound reports whether the lookup table is set.
func (l ListBy) Bound() bool {
	return l.index != nil
}
