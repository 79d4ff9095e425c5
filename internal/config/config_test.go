package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"DataDir", cfg.DataDir, "/tmp/xdg/storyshuffle"},
		{"Delimiter", cfg.Delimiter, "* * *"},
		{"DelimiterIsRegex", cfg.DelimiterIsRegex, false},
		{"Verbose", cfg.Verbose, false},
		{"Seed", cfg.Seed, uint64(0)},
		{"LogFile", cfg.LogFile, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("STORYSHUFFLE_DELIMITER", "###")
	t.Setenv("STORYSHUFFLE_DELIMITER_IS_REGEX", "true")
	t.Setenv("STORYSHUFFLE_SEED", "99")
	viper.SetEnvPrefix("STORYSHUFFLE")
	viper.AutomaticEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Delimiter != "###" {
		t.Errorf("Delimiter = %q, want %q", cfg.Delimiter, "###")
	}
	if !cfg.DelimiterIsRegex {
		t.Error("DelimiterIsRegex = false, want true")
	}
	if cfg.Seed != 99 {
		t.Errorf("Seed = %d, want 99", cfg.Seed)
	}
	d := cfg.DefaultDelimiter()
	if d.Pattern != "###" || !d.IsRegex {
		t.Errorf("unexpected delimiter %+v", d)
	}
}

func TestInit_ConfigFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	path := filepath.Join(dir, ".storyshuffle.toml")
	content := "data_dir = \"" + dir + "\"\nverbose = true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Init(path); err != nil {
		t.Fatalf("Init() returned unexpected error: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, dir)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
	if cfg.DatabasePath() != filepath.Join(dir, DatabaseFile) {
		t.Errorf("unexpected database path %q", cfg.DatabasePath())
	}
}

func TestInit_MissingExplicitFile(t *testing.T) {
	viper.Reset()

	if err := Init(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandHome("~/notes"); got != filepath.Join(home, "notes") {
		t.Errorf("ExpandHome(~/notes) = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome(/abs/path) = %q", got)
	}
}

func TestDataPath(t *testing.T) {
	t.Setenv("STORYSHUFFLE_DATA_DIR", "/srv/stories")
	if got := DataPath(); got != "/srv/stories" {
		t.Errorf("DataPath() = %q, want /srv/stories", got)
	}

	t.Setenv("STORYSHUFFLE_DATA_DIR", "")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	if got := DataPath(); got != "/tmp/xdg/storyshuffle" {
		t.Errorf("DataPath() = %q, want /tmp/xdg/storyshuffle", got)
	}
}
