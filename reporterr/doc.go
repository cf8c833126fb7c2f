// Package reporterr provides the structured error type returned while
// extracting a Nipper report.
//
// # Error Codes
//
//   - CodeSectionNotFound: a required section reference key is absent
//   - CodeStructureMismatch: a positional layout assumption was violated
//   - CodeMissingAttribute: an identity attribute (index, title, ref) is absent
//   - CodeUnresolvedReference: a mitigation entry matched zero or several findings
//   - CodeParseError: the document bytes are not well-formed XML
//
// # Usage
//
//	err := reporterr.New("SECURITY.CONCLUSIONS", "conclusion", reporterr.CodeStructureMismatch,
//	    "expected list at offset 3").
//	    WithDetails(map[string]any{"offset": 3, "children": 2})
//
// Check the kind of failure with the sentinels:
//
//	if errors.Is(err, reporterr.ErrStructureMismatch) {
//	    // layout changed
//	}
//
// Extract the details:
//
//	var rerr *reporterr.Error
//	if errors.As(err, &rerr) {
//	    fmt.Println(rerr.Section, rerr.Operation, rerr.Code)
//	}
//
// Only CodeUnresolvedReference is recoverable; every other code aborts the
// enclosing report.
package reporterr
