// Package mitigation resolves the mitigation classification of a Security
// Audit against its findings.
//
// Nipper lists each finding under a fixing-effort heading (quick, planned,
// involved) as free text that embeds the finding's section number, e.g.
// "Weak SNMP community (see section 2.4)". Classify extracts that number,
// resolves it against the findings by exact section-number equality and
// groups the findings by fixing effort and by rating. Entries that resolve to
// zero or several findings are reported in a side list; they never abort the
// classification.
//
// ListBy stores section numbers and resolves them through a finding.Index, so
// the classification references the Security Audit findings without copying
// them.
package mitigation
