package finding

import (
	"fmt"
	"strings"
)

// FixingEffort is the remediation-cost class of a finding.
type FixingEffort string

const (
	// EffortQuick marks findings fixed by a configuration change.
	EffortQuick FixingEffort = "quick"

	// EffortPlanned marks findings that need a scheduled change.
	EffortPlanned FixingEffort = "planned"

	// EffortInvolved marks findings that need significant work, e.g. an upgrade.
	EffortInvolved FixingEffort = "involved"
)

// IsValid returns true if the fixing effort is valid.
func (e FixingEffort) IsValid() bool {
	switch e {
	case EffortQuick, EffortPlanned, EffortInvolved:
		return true
	default:
		return false
	}
}

// String returns the string representation of the fixing effort.
func (e FixingEffort) String() string {
	return string(e)
}

// DisplayName returns a human-readable display name for the fixing effort.
func (e FixingEffort) DisplayName() string {
	switch e {
	case EffortQuick:
		return "Quick"
	case EffortPlanned:
		return "Planned"
	case EffortInvolved:
		return "Involved"
	default:
		return string(e)
	}
}

// ParseFixingEffort parses a fixing effort case-insensitively.
func ParseFixingEffort(s string) (FixingEffort, error) {
	effort := FixingEffort(strings.ToLower(strings.TrimSpace(s)))
	if !effort.IsValid() {
		return "", fmt.Errorf("invalid fixing effort: %q", s)
	}
	return effort, nil
}

// AllFixingEfforts returns all fixing efforts from cheapest to most involved.
func AllFixingEfforts() []FixingEffort {
	return []FixingEffort{
		EffortQuick,
		EffortPlanned,
		EffortInvolved,
	}
}
