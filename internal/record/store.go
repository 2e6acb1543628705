package record

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Supported record file extensions.
const (
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
	ExtBSON = ".bson"
)

// Store keeps named records as files in one directory, one record per file.
type Store struct {
	dir string
	ext string
}

// NewStore returns a Store rooted at dir writing files with the given
// extension. An empty extension means YAML.
func NewStore(dir, ext string) (*Store, error) {
	if ext == "" {
		ext = ExtYAML
	}

	switch ext {
	case ExtYAML, ExtYML, ExtBSON:
	default:
		return nil, fmt.Errorf("unsupported record format %q", ext)
	}

	return &Store{dir: dir, ext: ext}, nil
}

// Dir returns the directory the store reads and writes.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file backing the named record. Spaces in names become
// underscores.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, strings.ReplaceAll(name, " ", "_")+s.ext)
}

// Load reads the named record.
func (s *Store) Load(name string) (*Map, error) {
	return LoadFile(s.Path(name))
}

// Save writes the named record, creating the directory if needed.
func (s *Store) Save(name string, m *Map) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create record directory %s: %w", s.dir, err)
	}

	return WriteFile(s.Path(name), m)
}

// Names lists the records present in the store, sorted.
func (s *Store) Names() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read record directory %s: %w", s.dir, err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != s.ext {
			continue
		}

		names = append(names, strings.TrimSuffix(entry.Name(), s.ext))
	}

	slices.Sort(names)

	return names, nil
}

// LoadFile reads a record file, choosing the codec from its extension.
func LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file %s: %w", path, err)
	}

	var m *Map
	if filepath.Ext(path) == ExtBSON {
		m, err = DecodeBSON(data)
	} else {
		m, err = DecodeYAML(data)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// WriteFile writes a record file, choosing the codec from its extension.
func WriteFile(path string, m *Map) error {
	var (
		data []byte
		err  error
	)

	if filepath.Ext(path) == ExtBSON {
		data, err = EncodeBSON(m)
	} else {
		data, err = EncodeYAML(m)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write record file %s: %w", path, err)
	}

	return nil
}
