package section

import "fmt"

// Ref identifies a part or section node of a report.
type Ref struct {
	// Index is the ordinal used for cross-referencing (e.g. "2.3").
	Index string `json:"index" yaml:"index"`

	// Title is the human-readable heading of the section.
	Title string `json:"title" yaml:"title"`

	// Key is the value of the ref attribute. It is unique among siblings.
	Key string `json:"ref" yaml:"ref"`
}

// Identity returns the Ref itself so records embedding a Ref satisfy Section.
func (r Ref) Identity() Ref {
	return r
}

// String returns the ref as "index title (key)".
func (r Ref) String() string {
	return fmt.Sprintf("%s %s (%s)", r.Index, r.Title, r.Key)
}

// Kind enumerates the section record variants.
type Kind string

const (
	KindIntroduction             Kind = "introduction"
	KindFinding                  Kind = "finding"
	KindCVE                      Kind = "cve"
	KindObservation              Kind = "observation"
	KindConclusion               Kind = "conclusion"
	KindRecommendations          Kind = "recommendations"
	KindMitigationClassification Kind = "mitigation_classification"
)

// IsValid returns true if the kind is one of the known variants.
func (k Kind) IsValid() bool {
	for _, known := range AllKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// AllKinds returns every section kind in report order.
func AllKinds() []Kind {
	return []Kind{
		KindIntroduction,
		KindFinding,
		KindCVE,
		KindObservation,
		KindConclusion,
		KindRecommendations,
		KindMitigationClassification,
	}
}

// Section is implemented by every typed record extracted from a section node.
type Section interface {
	Identity() Ref
	Kind() Kind
}
