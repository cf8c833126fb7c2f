// Package section defines the identity and tabular building blocks shared by
// every record extracted from a Nipper report.
//
// A Ref carries the three identifying attributes found on each part or section
// node (index, title and ref). Row and Table hold the generic header/body tables
// Nipper emits for device lists, per-device conclusions and recommendations.
//
// Every typed section record implements Section, which together with Kind forms
// a closed set of variants:
//
//	switch s := rec.(type) {
//	case *finding.Finding:
//		...
//	}
package section
