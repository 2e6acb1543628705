// Package suggest proposes close spellings for names that were not found:
// missing record keys during path checks, and record fields that no schema
// defines.
package suggest
