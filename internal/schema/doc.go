// Package schema validates records against a registry of layered schema
// nodes.
//
// A schema node lists the field paths a record must have (Mandatory), may
// have (Optional), and must have at least one of (AnyOf), together with the
// nodes it extends. Nodes are evaluated parents first. A node whose fields
// are absent is either a validation failure, when it is required, or the
// signal that the record simply lacks that feature, in which case everything
// extending it is dropped without being evaluated.
//
// Schema files are YAML documents named after the node:
//
//	# caster.yaml
//	Extends: creature
//	Mandatory:
//	  - Mana
//	  - Spells[*].Name
//	Optional:
//	  - Focus
//	AnyOf:
//	  - Stats[Intelligence]
//	  - Stats[Wisdom]
//	Required: [undead]
//
// Required accepts true, false, a single node name, or a list of node names.
// A list makes the node required only when one of the named nodes has
// already been found implemented.
package schema
