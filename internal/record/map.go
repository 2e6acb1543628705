package record

import (
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/yaml.v3"
)

// Map is a string-keyed mapping that remembers insertion order.
// Iteration order is significant for wildcard fan-out, so records decoded from
// YAML or BSON keep the order of their source document.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap builds a Map from alternating key/value arguments.
// It panics if a key is not a string or a value is missing.
func NewMap(pairs ...any) *Map {
	if len(pairs)%2 != 0 {
		panic("record.NewMap: odd number of arguments")
	}

	m := &Map{}

	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("record.NewMap: key %v is %T, not string", pairs[i], pairs[i]))
		}

		m.Set(key, pairs[i+1])
	}

	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}

	v, ok := m.values[key]

	return v, ok
}

// Set stores value under key. New keys are appended to the iteration order;
// existing keys keep their position.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}

	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = value
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key string) bool {
	if m == nil {
		return false
	}

	if _, ok := m.values[key]; !ok {
		return false
	}

	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })

	return true
}

// Keys returns the keys in iteration order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Clone returns a deep copy. Nested *Map values and []any sequences are
// copied; other values are shared.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}

	out := &Map{
		keys:   slices.Clone(m.keys),
		values: make(map[string]any, len(m.values)),
	}

	for k, v := range m.values {
		out.values[k] = cloneValue(v)
	}

	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}

		return out
	default:
		return v
	}
}

// --- YAML ---

// UnmarshalYAML decodes a mapping node, keeping key order. Nested mappings
// become *Map and sequences become []any.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping, got %s", node.Line, yamlKindName(node.Kind))
	}

	m.keys = nil
	m.values = make(map[string]any, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string

		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("line %d: decode key: %w", node.Content[i].Line, err)
		}

		value, err := decodeYAMLNode(node.Content[i+1])
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}

		m.Set(key, value)
	}

	return nil
}

// MarshalYAML encodes the map as a mapping node in iteration order.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, k := range m.Keys() {
		var key, value yaml.Node

		key.SetString(k)

		if err := value.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}

		node.Content = append(node.Content, &key, &value)
	}

	return node, nil
}

func decodeYAMLNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		return decodeYAMLNode(node.Content[0])
	case yaml.AliasNode:
		return decodeYAMLNode(node.Alias)
	case yaml.MappingNode:
		m := &Map{}
		if err := m.UnmarshalYAML(node); err != nil {
			return nil, err
		}

		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))

		for _, item := range node.Content {
			v, err := decodeYAMLNode(item)
			if err != nil {
				return nil, err
			}

			out = append(out, v)
		}

		return out, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return v, nil
	}
}

func yamlKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

// --- BSON ---

// MarshalBSON encodes the map as a BSON document in iteration order.
func (m *Map) MarshalBSON() ([]byte, error) {
	return bson.Marshal(m.toD())
}

// UnmarshalBSON decodes a BSON document, keeping element order.
func (m *Map) UnmarshalBSON(data []byte) error {
	var doc bson.D

	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}

	m.keys = nil
	m.values = make(map[string]any, len(doc))

	for _, e := range doc {
		m.Set(e.Key, fromBSON(e.Value))
	}

	return nil
}

func (m *Map) toD() bson.D {
	doc := make(bson.D, 0, m.Len())
	for _, k := range m.Keys() {
		doc = append(doc, bson.E{Key: k, Value: toBSON(m.values[k])})
	}

	return doc
}

func toBSON(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.toD()
	case []any:
		out := make(bson.A, len(t))
		for i, item := range t {
			out[i] = toBSON(item)
		}

		return out
	default:
		return v
	}
}

func fromBSON(v any) any {
	switch t := v.(type) {
	case bson.D:
		m := &Map{}
		for _, e := range t {
			m.Set(e.Key, fromBSON(e.Value))
		}

		return m
	case bson.M:
		m := &Map{}
		for _, k := range sortedKeys(t) {
			m.Set(k, fromBSON(t[k]))
		}

		return m
	case bson.A:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = fromBSON(item)
		}

		return out
	default:
		return v
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
