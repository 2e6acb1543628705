// Package fieldpath addresses, queries, and mutates records through a compact
// textual path grammar.
//
// # Path Syntax
//
//	path     = segment ("." segment)*
//	segment  = key ("[" alt ("|" alt)* "]")*
//	alt      = identifier | integer | "*"
//
// Examples:
//   - Simple keys: "Name"
//   - Nested keys: "Stats.Strength"
//   - Sequence elements: "Skills[0]", "Skills[*].Rank"
//   - Alternatives: "Stats[Strength|Agility]"
//   - Multi-level fan-out: "Party[*].Stats[*]"
//
// Index groups are applied left to right. Against a sequence a selector is an
// index; against a mapping or object it is a key. A group with a wildcard, or
// with more than one selector, fans out into one branch per match. There is
// no escaping of '.', '[', ']' or '|' inside keys.
//
// # Operations
//
//   - Exists walks every branch and reports all resolved labels and every
//     problem it meets. It never fails.
//   - Read returns the value at a path as a Tree, nested once per fan-out
//     point, and stops at the first problem.
//   - Write assigns or combines a value at every branch, in place, and stops
//     at the first problem.
//
// A label is a path with every selector resolved: "Skills[1].Rank",
// "Stats.Agility".
package fieldpath
