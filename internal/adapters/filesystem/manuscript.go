package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"storyshuffle/internal/ports"
)

// Manuscripts implements ports.ManuscriptSource on the local filesystem
type Manuscripts struct{}

// Ensure Manuscripts implements ManuscriptSource
var _ ports.ManuscriptSource = (*Manuscripts)(nil)

// NewManuscripts creates a new filesystem manuscript source
func NewManuscripts() *Manuscripts {
	return &Manuscripts{}
}

// Read returns the manuscript at path. A UTF-8 byte order mark and Windows
// line endings are normalized away so delimiters match as typed.
func (m *Manuscripts) Read(path string) (string, error) {
	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	return strings.ReplaceAll(text, "\r\n", "\n"), nil
}

// Write stores text at path. The file is written beside its destination and
// renamed into place, so a reader never sees half a manuscript.
func (m *Manuscripts) Write(path, text string) error {
	path = expandHome(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write manuscript: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write manuscript: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// expandHome expands a leading ~ to the home directory
func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
