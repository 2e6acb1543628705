package schema

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"entity-schema/internal/common"
	"entity-schema/internal/fieldpath"
)

// Node is one schema: the fields it declares and the nodes it extends.
type Node struct {
	// Name identifies the node. It comes from the file stem, not the document.
	Name      string        `yaml:"-"`
	Mandatory []string      `yaml:"Mandatory,omitempty"`
	Optional  []string      `yaml:"Optional,omitempty"`
	AnyOf     []string      `yaml:"AnyOf,omitempty"`
	Extends   StringOrArray `yaml:"Extends,omitempty"`
	Required  Requirement   `yaml:"Required,omitempty"`
}

// Paths returns every declared path in declaration order.
func (n *Node) Paths() []string {
	return slices.Concat(n.Mandatory, n.Optional, n.AnyOf)
}

// Check parses every declared path.
func (n *Node) Check() error {
	if n.Name == "" {
		return errors.New("schema has no name")
	}

	var errs []error

	for _, p := range n.Paths() {
		if p == "" {
			errs = append(errs, fmt.Errorf("schema %q: empty path: %w", n.Name, fieldpath.ErrPathSyntax))
			continue
		}

		if _, err := fieldpath.Parse(p); err != nil {
			errs = append(errs, fmt.Errorf("schema %q: %w", n.Name, err))
		}
	}

	return errors.Join(errs...)
}

// Requirement says when a node must be implemented.
type Requirement struct {
	// Always marks the node as unconditionally required.
	Always bool
	// When lists nodes whose implementation makes this one required.
	When []string
}

// Conditional reports whether the requirement depends on other nodes.
func (r Requirement) Conditional() bool {
	return !r.Always && len(r.When) > 0
}

// IsZero reports whether the node is never required.
func (r Requirement) IsZero() bool {
	return !r.Always && len(r.When) == 0
}

// UnmarshalYAML accepts a boolean, a single node name or a list of names.
func (r *Requirement) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!bool" {
			var b bool
			if err := node.Decode(&b); err != nil {
				return err
			}

			*r = Requirement{Always: b}

			return nil
		}

		if node.Tag == "!!null" {
			*r = Requirement{}
			return nil
		}

		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}

		*r = Requirement{}
		if s != "" {
			r.When = []string{s}
		}

		return nil

	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}

		*r = Requirement{When: names}

		return nil

	default:
		return fmt.Errorf("line %d: Required must be a boolean, a name or a list of names", node.Line)
	}
}

// MarshalYAML writes a boolean unless the requirement names other nodes.
func (r Requirement) MarshalYAML() (any, error) {
	if r.Conditional() {
		return r.When, nil
	}

	return r.Always, nil
}

// StringOrArray holds a list that may be written as a single string.
type StringOrArray []string

// UnmarshalYAML accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}
