package audit

import (
	"fmt"

	"github.com/zero-day-ai/nipper/finding"
	"github.com/zero-day-ai/nipper/mitigation"
	"github.com/zero-day-ai/nipper/section"
)

// Describe returns a one-line summary of a section record.
func Describe(s section.Section) string {
	ref := s.Identity()
	switch v := s.(type) {
	case *Introduction:
		return fmt.Sprintf("%s: %d devices", ref, v.Devices.Len())
	case *finding.Finding:
		return fmt.Sprintf("%s: %s, %d devices", ref, v.Rating(), len(v.AffectedDevices))
	case *CVE:
		return fmt.Sprintf("%s: %d devices, %d references", ref, len(v.AffectedDevices), len(v.References))
	case *Observation:
		return fmt.Sprintf("%s: %d devices", ref, len(v.Devices))
	case *Conclusion:
		return fmt.Sprintf("%s: %d critical, %d high", ref,
			len(v.List(finding.RatingCritical)), len(v.List(finding.RatingHigh)))
	case *Recommendations:
		return fmt.Sprintf("%s: %d recommendations", ref, v.List.Len())
	case *mitigation.Classification:
		return fmt.Sprintf("%s: %d findings, %d unresolved", ref, v.Statistics.Total, len(v.Unresolved))
	default:
		return ref.String()
	}
}
