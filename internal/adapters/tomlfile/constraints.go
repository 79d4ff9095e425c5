// Package tomlfile reads and writes constraint files:
//
//	[[section]]
//	number = 1
//	fixed = true
//
//	[[section]]
//	number = 3
//	before = "4, 5"
package tomlfile

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"storyshuffle/internal/application"
	"storyshuffle/internal/domain"
	"storyshuffle/internal/ports"
)

type constraintFile struct {
	Sections []sectionEntry `toml:"section"`
}

type sectionEntry struct {
	Number int    `toml:"number"`
	Fixed  bool   `toml:"fixed,omitempty"`
	Before string `toml:"before,omitempty"`
}

// Constraints implements ports.ConstraintFile
type Constraints struct{}

// Ensure Constraints implements ConstraintFile
var _ ports.ConstraintFile = (*Constraints)(nil)

// NewConstraints creates a new TOML constraint file adapter
func NewConstraints() *Constraints {
	return &Constraints{}
}

// Load parses the constraint file at path. Section numbers must be
// positive; whether they exist is decided when the specs are applied.
func (c *Constraints) Load(path string) ([]domain.ConstraintSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading constraint file: %w", err)
	}
	return Parse(data)
}

// Parse decodes constraint file content.
func Parse(data []byte) ([]domain.ConstraintSpec, error) {
	var file constraintFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing constraint file: %w", err)
	}

	specs := make([]domain.ConstraintSpec, 0, len(file.Sections))
	seen := make(map[int]bool, len(file.Sections))
	for i, entry := range file.Sections {
		if entry.Number < 1 {
			return nil, &application.ValidationError{
				Field:   "number",
				Message: fmt.Sprintf("entry %d: section numbers start at 1, got %d", i+1, entry.Number),
			}
		}
		if seen[entry.Number] {
			return nil, &application.ValidationError{
				Field:   "number",
				Message: fmt.Sprintf("entry %d: §%d appears more than once", i+1, entry.Number),
			}
		}
		seen[entry.Number] = true
		specs = append(specs, domain.ConstraintSpec{
			Section: entry.Number,
			Fixed:   entry.Fixed,
			Before:  entry.Before,
		})
	}
	return specs, nil
}

// Save writes specs to path atomically (write temp + rename).
func (c *Constraints) Save(path string, specs []domain.ConstraintSpec) error {
	file := constraintFile{Sections: make([]sectionEntry, len(specs))}
	for i, spec := range specs {
		file.Sections[i] = sectionEntry{Number: spec.Section, Fixed: spec.Fixed, Before: spec.Before}
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshaling constraints: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp constraint file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming constraint file: %w", err)
	}
	return nil
}
