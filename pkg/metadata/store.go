// Package metadata is the store for the persisted project metadata file:
// the project name, the single authoritative version field, and the extra
// feature sets. The version is mutated through an explicit read-modify-write
// pair so both halves of the mutation are auditable.
package metadata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the parsed project metadata document.
type File struct {
	Name    string              `yaml:"name"`
	Version string              `yaml:"version"`
	Extras  map[string][]string `yaml:"extras,omitempty"`
}

// Store reads and writes a single project metadata file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the metadata file path this store is bound to.
func (s *Store) Path() string {
	return s.path
}

// Read parses the whole metadata document.
func (s *Store) Read() (*File, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata file %q: %w", s.path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing metadata YAML: %w", err)
	}
	if f.Version == "" {
		return nil, fmt.Errorf("metadata file %q has no version field", s.path)
	}

	return &f, nil
}

// ReadVersion returns the raw persisted version string.
func (s *Store) ReadVersion() (string, error) {
	f, err := s.Read()
	if err != nil {
		return "", err
	}
	return f.Version, nil
}

// WriteVersion replaces the version field in place, preserving every other
// field in the document. The file is rewritten atomically enough for a
// single sequential writer; no locking is attempted.
func (s *Store) WriteVersion(version string) error {
	if version == "" {
		return fmt.Errorf("refusing to write empty version to %q", s.path)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading metadata file %q: %w", s.path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing metadata YAML: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("metadata file %q is not a YAML mapping", s.path)
	}

	if !setMappingValue(doc.Content[0], "version", version) {
		return fmt.Errorf("metadata file %q has no version field", s.path)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding metadata YAML: %w", err)
	}

	if err := os.WriteFile(s.path, out, 0644); err != nil {
		return fmt.Errorf("writing metadata file %q: %w", s.path, err)
	}

	return nil
}

// setMappingValue updates the scalar value for key in a mapping node.
// Returns false if the key is absent.
func setMappingValue(mapping *yaml.Node, key, value string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1].SetString(value)
			return true
		}
	}
	return false
}
