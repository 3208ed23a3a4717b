package manifest

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/minio/highwayhash"
	"gopkg.in/yaml.v3"
)

var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// Entry represents one generated file recorded in the manifest.
type Entry struct {
	File   string `yaml:"file" json:"file"`
	Source string `yaml:"source,omitempty" json:"source,omitempty"`
	Hash   string `yaml:"hash" json:"hash"`
}

// Manifest tracks the files written by previous generate runs.
type Manifest struct {
	Marker  string  `yaml:"marker" json:"marker"`
	StandIn string  `yaml:"stand_in" json:"stand_in"`
	Entries []Entry `yaml:"entries" json:"entries"`
}

// Hash is the content hash recorded for generated text.
func Hash(content []byte) (string, error) {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	if _, err = h.Write(content); err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	slices.SortFunc(m.Entries, func(a, b Entry) int { return strings.Compare(a.File, b.File) })
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// Record adds e, replacing any existing entry for the same file.
func (m *Manifest) Record(e Entry) {
	for i := range m.Entries {
		if m.Entries[i].File == e.File {
			m.Entries[i] = e
			return
		}
	}
	m.Entries = append(m.Entries, e)
}

// Lookup returns the entry recorded for file, if present.
func (m *Manifest) Lookup(file string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.File == file {
			return e, true
		}
	}
	return Entry{}, false
}

// Retain drops every entry whose file is not in files and returns the
// dropped entries.
func (m *Manifest) Retain(files []string) []Entry {
	var dropped []Entry
	m.Entries = slices.DeleteFunc(m.Entries, func(e Entry) bool {
		if slices.Contains(files, e.File) {
			return false
		}
		dropped = append(dropped, e)
		return true
	})
	return dropped
}
