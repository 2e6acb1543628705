// Package diagnostic provides structured errors, warnings, and notes
// produced while checking records.
//
// Key capabilities:
//   - Missing key / member / index reports from path existence checks
//   - Missing field reports for required schemas
//   - Undefined field warnings with "did you mean" suggestions
package diagnostic
