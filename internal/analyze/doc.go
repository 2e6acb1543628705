// Package analyze loads Go packages and derives schema nodes from their
// struct types.
//
// A struct's exported fields become paths in the field-path grammar: nested
// structs are joined with '.', slices of structs continue through "[*]", and
// everything else is a leaf. Pointer fields and fields tagged omitempty are
// optional; every other leaf is mandatory. Fields tagged `yaml:"-"` are
// skipped, and embedded structs contribute their members as if declared
// inline.
package analyze
