package analyze

import (
	"fmt"

	"entity-schema/internal/schema"
)

// Scaffold derives a schema node named name from a struct type. Optional
// fields land in Optional and the rest in Mandatory, both in declaration
// order.
func Scaffold(name string, root *TypeInfo, maxDepth int) (*schema.Node, error) {
	if root == nil || root.Kind != TypeKindStruct {
		return nil, fmt.Errorf("cannot scaffold schema %q: not a struct type", name)
	}

	fields := FieldPaths(root, maxDepth)
	if len(fields) == 0 {
		return nil, fmt.Errorf("cannot scaffold schema %q: %s has no exported fields", name, root.ID)
	}

	n := &schema.Node{Name: name}

	for _, f := range fields {
		if f.Optional {
			n.Optional = append(n.Optional, f.Path)
		} else {
			n.Mandatory = append(n.Mandatory, f.Path)
		}
	}

	if err := n.Check(); err != nil {
		return nil, err
	}

	return n, nil
}
