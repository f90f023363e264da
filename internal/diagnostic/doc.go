// Package diagnostic provides structured, coded findings produced while
// validating registration-time input (plugin shapes, import declarations,
// generic parameter declarations).
//
// Key capabilities:
//   - Stable codes for every violated contract
//   - The exact path of the offending field (e.g. "imports[2].package")
//   - Suggestions for likely-intended names
package diagnostic
