package models

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed roster.yaml
var defaultRoster []byte

// DefaultRoster returns the built-in enemy roster.
func DefaultRoster() *Roster {
	r, err := ParseRoster(defaultRoster)
	if err != nil {
		panic(fmt.Sprintf("embedded roster is invalid: %v", err))
	}
	return r
}

// LoadRoster reads a roster from a YAML file.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	r, err := ParseRoster(data)
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}
	return r, nil
}

// ParseRoster decodes and validates a YAML roster.
func ParseRoster(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse roster YAML: %w", err)
	}
	if len(r.Enemies) != MaxLevel {
		return nil, fmt.Errorf("roster must list %d enemies, got %d", MaxLevel, len(r.Enemies))
	}
	for i, e := range r.Enemies {
		if e.Name == "" {
			return nil, fmt.Errorf("enemy at level %d has no name", i+1)
		}
	}
	return &r, nil
}
