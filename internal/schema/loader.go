package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// IsSchemaFile reports whether path has a schema file extension.
func IsSchemaFile(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// NameOf derives a node name from a schema file path: the file stem.
func NameOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadFile loads and parses a schema file. The node is named after the file.
func LoadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	n, err := Parse(NameOf(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return n, nil
}

// Parse parses YAML data into a named Node. An empty document is a node
// that declares nothing.
func Parse(name string, data []byte) (*Node, error) {
	n := &Node{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(n); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	n.Name = name

	return n, nil
}

// LoadDir loads every schema file under dir, recursively, into a new
// registry. Two files with the same stem are a configuration error.
func LoadDir(dir string) (*Registry, error) {
	reg := NewRegistry()
	seen := make(map[string]string)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !IsSchemaFile(path) {
			return nil
		}

		n, err := LoadFile(path)
		if err != nil {
			return err
		}

		if prev, ok := seen[n.Name]; ok {
			return fmt.Errorf("schema %q defined twice: %s and %s", n.Name, prev, path)
		}

		seen[n.Name] = path

		return reg.Register(n)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load schemas from %s: %w", dir, err)
	}

	return reg, nil
}

// Marshal serializes a Node to YAML.
func Marshal(n *Node) ([]byte, error) {
	return yaml.Marshal(n)
}

// WriteFile writes a Node to dir, named after the node.
func WriteFile(n *Node, dir string) error {
	data, err := Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal schema %q: %w", n.Name, err)
	}

	path := filepath.Join(dir, n.Name+".yaml")

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write schema file %s: %w", path, err)
	}

	return nil
}
