// Package nipper parses Nipper Studio XML audit reports into a typed,
// read-only model.
//
// A report has four parts:
//
//   - Information: report title, author, date, Nipper version and devices
//   - Security Audit: introduction, findings, conclusions, recommendations
//     and the mitigation classification
//   - Vulnerability Audit: introduction, CVEs, conclusions and recommendations
//   - Filtering Complexity: introduction and observations
//
// # Getting Started
//
//	data, err := os.ReadFile("report.xml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	report, err := nipper.Parse(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range report.SecurityAudit.Findings {
//		fmt.Println(f.Index, f.Title, f.Rating())
//	}
//
// # Configuration
//
// A Parser is configured with functional options:
//
//	p, err := nipper.New(
//		nipper.WithLogger(logger),
//		nipper.WithConfigFile("nipper.yaml"),
//		nipper.WithTracer(tracer),
//	)
//
// The configuration selects parts, overrides section ref keys, chooses how
// ragged table rows are handled and enables a report cache (in memory or
// Redis) keyed by the SHA-256 digest of the document.
//
// # Errors
//
// Parsing is all-or-nothing. Any structural error aborts the parse and no
// report is returned. Errors carry a code from package reporterr and match
// its sentinels:
//
//	if errors.Is(err, nipper.ErrStructureMismatch) {
//		// the document does not follow the expected layout
//	}
//
// Mitigation entries that do not resolve to exactly one finding are the one
// recoverable case: they are kept on the classification as Unresolved and
// do not fail the parse.
//
// # Determinism
//
// Report.ID is a name-based UUID derived from the document digest, so
// parsing the same bytes twice yields equal reports.
package nipper
