package record

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a YAML document into a Map. An empty document yields an
// empty Map.
func DecodeYAML(data []byte) (*Map, error) {
	m := &Map{}

	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse record YAML: %w", err)
	}

	return m, nil
}

// EncodeYAML serializes a Map to YAML, preserving key order.
func EncodeYAML(m *Map) ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record YAML: %w", err)
	}

	return data, nil
}

// DecodeBSON parses a BSON document into a Map.
func DecodeBSON(data []byte) (*Map, error) {
	m := &Map{}

	if err := m.UnmarshalBSON(data); err != nil {
		return nil, fmt.Errorf("failed to parse record BSON: %w", err)
	}

	return m, nil
}

// EncodeBSON serializes a Map to BSON, preserving key order.
func EncodeBSON(m *Map) ([]byte, error) {
	data, err := m.MarshalBSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record BSON: %w", err)
	}

	return data, nil
}

// DecodeValue parses a single YAML value of any shape. Mappings become *Map
// and sequences []any, as in DecodeYAML. An empty input yields nil.
func DecodeValue(data []byte) (any, error) {
	var node yaml.Node

	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse YAML value: %w", err)
	}

	if node.Kind == 0 {
		return nil, nil
	}

	return decodeYAMLNode(&node)
}
