// Package diagnostic provides structured errors, warnings, and infos
// produced while building rule trees.
//
// Key capabilities:
//   - Skipped directive reports
//   - Unmapped target field notes
//   - Target-only directive warnings (source locator fell back to the target)
//   - Combined error for strict callers
package diagnostic
