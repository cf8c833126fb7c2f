// Package finding provides the typed security-audit finding extracted from a
// Nipper report, together with the rating and fixing-effort classes it is
// grouped by.
//
// # Core Types
//
// Finding is one issue of the Security Audit part:
//   - section identity (index, title, ref) and its numeric Number
//   - affected devices, one attribute row per device
//   - the four-entry rating record, keys as written in the document
//   - finding, impact, ease and recommendation text
//
// # Ratings and Fixing Effort
//
// Rating ranks findings from critical to informational. FixingEffort is the
// coarse remediation cost (quick, planned, involved) assigned by the
// mitigation classification.
//
// # Lookup
//
// Index maps section numbers to findings. It is built once per report and is
// how other records refer to findings without copying them.
//
// # Filtering and Export
//
// Filter and Query (a CEL expression) select findings; Export writes them as
// JSON, CSV or YAML.
//
// Example usage:
//
//	q, err := finding.NewQuery(`rating == "critical" && devices.exists(d, d == "core-rtr")`)
//	if err != nil {
//		log.Fatal(err)
//	}
//	critical, err := q.Select(report.SecurityAudit.Findings)
package finding
