package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"storyshuffle/internal/domain"
)

// DefaultDataDir is used when neither XDG_DATA_HOME nor a configured
// data_dir is available.
const DefaultDataDir = "~/.local/share/storyshuffle"

// DatabaseFile is the name of the project store inside the data directory.
const DatabaseFile = "storyshuffle.db"

// Config holds runtime configuration. Values are populated from
// .storyshuffle.toml, STORYSHUFFLE_* env vars, and CLI flags.
type Config struct {
	DataDir          string `mapstructure:"data_dir"`
	Delimiter        string `mapstructure:"delimiter"`
	DelimiterIsRegex bool   `mapstructure:"delimiter_is_regex"`
	Verbose          bool   `mapstructure:"verbose"`
	Seed             uint64 `mapstructure:"seed"`
	LogFile          string `mapstructure:"log_file"`
}

// Init points viper at the config file and environment. An explicit file
// wins; otherwise .storyshuffle.toml is looked up in the working directory
// and then the home directory. A missing file is not an error.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".storyshuffle")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("STORYSHUFFLE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("data_dir", defaultDataDir())
	viper.SetDefault("delimiter", domain.DefaultDelimiterPattern)
	viper.SetDefault("delimiter_is_regex", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("seed", 0)
	viper.SetDefault("log_file", "")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.DataDir = ExpandHome(cfg.DataDir)
	cfg.LogFile = ExpandHome(cfg.LogFile)
	return cfg, nil
}

// DefaultDelimiter returns the configured delimiter for new manuscripts.
func (c Config) DefaultDelimiter() domain.Delimiter {
	return domain.Delimiter{Pattern: c.Delimiter, IsRegex: c.DelimiterIsRegex}
}

// DatabasePath returns the location of the project store.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, DatabaseFile)
}

// DataPath returns the data directory from STORYSHUFFLE_DATA_DIR, then
// XDG_DATA_HOME, falling back to DefaultDataDir. The result has ~ expanded.
func DataPath() string {
	if env := os.Getenv("STORYSHUFFLE_DATA_DIR"); env != "" {
		return ExpandHome(env)
	}
	return ExpandHome(defaultDataDir())
}

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "storyshuffle")
	}
	return DefaultDataDir
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
