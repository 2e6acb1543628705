// Package record provides the traversal model shared by the path engine and
// the schema validator.
//
// A record is an arbitrary tree. Internal nodes are either keyed containers
// (mappings with string keys, or objects exposing named members) or ordered
// sequences; everything else is a scalar leaf. The package does not own the
// records it looks at: callers build them, and the path engine mutates them in
// place.
//
// # Containers
//
// Open returns the keyed view of a node:
//   - *Map, the insertion-ordered mapping produced by the YAML and BSON codecs
//   - Go maps with string keys (iterated in sorted key order)
//   - values implementing Members
//   - structs and pointers to structs (exported fields only, `yaml:"-"` skipped)
//
// OpenSequence returns the indexed view of slices and arrays.
//
// # Persistence
//
// Store keeps one record per file in a directory, addressed by name. The file
// extension selects the codec (YAML or BSON).
package record
