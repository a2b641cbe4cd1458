// Package session reads and writes the persisted ball list.
//
// The list is an ordered sequence of {name, priority} entries stored as YAML
// or JSON. A missing file is an empty list.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPriority is used for entries that do not set one.
const DefaultPriority = 1

// Entry is one ball in the list.
type Entry struct {
	Name     string `yaml:"name" json:"name"`
	Priority int    `yaml:"priority" json:"priority"`
}

type rawEntry struct {
	Name     string `yaml:"name"`
	Priority *int   `yaml:"priority"`
}

// Load reads the list at path. A missing file yields an empty list and no
// error.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("read ball list: %w", err)
	}
	return Parse(data)
}

// Parse decodes a list from YAML or JSON.
func Parse(data []byte) ([]Entry, error) {
	var raw []rawEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ball list: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, r := range raw {
		e := Entry{Name: r.Name, Priority: DefaultPriority}
		if r.Priority != nil {
			e.Priority = *r.Priority
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Save writes entries to path, as JSON when the extension is .json and YAML
// otherwise. Parent directories are created.
func Save(path string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}

	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(entries, "", "  ")
	} else {
		data, err = yaml.Marshal(entries)
	}
	if err != nil {
		return fmt.Errorf("encode ball list: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create ball list dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write ball list: %w", err)
	}
	return nil
}
