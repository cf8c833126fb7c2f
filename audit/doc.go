// Package audit parses the parts of a Nipper report into typed records.
//
// A Parser reads one located part at a time:
//
//   - Information: report title, author, date, Nipper version and devices
//   - SecurityAudit: introduction, findings, conclusions, recommendations and
//     the mitigation classification
//   - VulnerabilityAudit: introduction, CVEs, conclusions and recommendations
//   - FilteringComplexity: introduction and observations
//
// Every section parser binds its node to a parser.Layout declared in
// layouts.go. When a node is shorter than its layout, or a table is not a
// headings/tablebody pair, the parser returns a STRUCTURE_MISMATCH error and
// the part is not built. The one exception is the details block of an
// observation's affected device, which Nipper emits either as a table or as a
// flat list; the list form is kept as DetailsTable with LayoutList.
package audit
