package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyshuffle/internal/adapters/filesystem"
	"storyshuffle/internal/adapters/sqlite"
	"storyshuffle/internal/application"
	"storyshuffle/internal/config"
)

func TestProjectName(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		path     string
		expected string
	}{
		{"flag wins", "draft", "drafts/novel.md", "draft"},
		{"file base name", "", "drafts/novel.md", "novel"},
		{"no extension", "", "/tmp/notes", "notes"},
		{"invalid base name", "", "drafts/.hidden", ""},
		{"nothing", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, projectName(tt.flag, tt.path))
		})
	}
}

func TestOpenSession(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := sqlite.Open(filepath.Join(dir, "storyshuffle.db"))
	require.NoError(t, err)
	defer store.Close()

	cfg := config.Config{Delimiter: "* * *", Seed: 9}
	source := filesystem.NewManuscripts()
	path := filepath.Join(dir, "novel.txt")
	require.NoError(t, os.WriteFile(path, []byte("One.\n\n* * *\n\nTwo.\n\n* * *\n\nThree."), 0o644))

	_, err = openSession(ctx, store, source, cfg, "novel", "")
	require.ErrorContains(t, err, "not found")

	s, err := openSession(ctx, store, source, cfg, "novel", path)
	require.NoError(t, err)
	assert.Equal(t, "novel", s.Name())
	assert.Equal(t, 3, s.Len())

	require.NoError(t, s.SetFixed(1, true))
	require.NoError(t, store.SaveProject(ctx, s.Project()))

	// Same text: the stored constraints survive
	s, err = openSession(ctx, store, source, cfg, "novel", path)
	require.NoError(t, err)
	c, err := s.Constraint(1)
	require.NoError(t, err)
	assert.True(t, c.Fixed)

	// The stored project opens without a file
	s, err = openSession(ctx, store, source, cfg, "novel", "")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	// Changed text re-splits
	require.NoError(t, os.WriteFile(path, []byte("One.\n\n* * *\n\nTwo."), 0o644))
	s, err = openSession(ctx, store, source, cfg, "novel", path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	c, _ = s.Constraint(1)
	assert.False(t, c.Fixed)

	_, err = openSession(ctx, store, source, cfg, "", "")
	require.Error(t, err)

	_, err = openSession(ctx, store, source, cfg, "a/b", path)
	require.ErrorAs(t, err, new(*application.ValidationError))
}
