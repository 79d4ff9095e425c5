package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storyshuffle/internal/adapters/sqlite"
	"storyshuffle/internal/buildinfo"
	"storyshuffle/internal/config"
	"storyshuffle/internal/logging"
	"storyshuffle/internal/ports"
)

var (
	cfgFile string
	cfg     config.Config
	store   ports.ProjectStore
)

var rootCmd = &cobra.Command{
	Use:   "storyshuffle-cli",
	Short: "Shuffle the sections of a manuscript under ordering constraints",
	Long: `storyshuffle-cli splits a manuscript into sections, checks the ordering
constraints attached to them, and produces random orderings that respect
every constraint.

Constraints are read from a TOML file:

  [[section]]
  number = 1
  fixed = true

  [[section]]
  number = 3
  before = "4, 5"

Named projects keep a manuscript, its constraints and the history of
shuffles in a local database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if err := config.Init(cfgFile); err != nil {
			return err
		}
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}

		logger := logging.New(os.Stderr, logging.Level(cfg.Verbose))
		cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return nil
		}
		err := store.Close()
		store = nil
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = buildinfo.Version
	rootCmd.SetVersionTemplate(buildinfo.Template())

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .storyshuffle.toml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the project database")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetStore opens the project store on first use
func GetStore() (ports.ProjectStore, error) {
	if store != nil {
		return store, nil
	}
	s, err := sqlite.Open(cfg.DatabasePath())
	if err != nil {
		return nil, err
	}
	store = s
	return store, nil
}
