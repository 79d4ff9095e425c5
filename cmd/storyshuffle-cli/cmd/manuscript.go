package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"storyshuffle/internal/adapters/filesystem"
	"storyshuffle/internal/adapters/tomlfile"
	"storyshuffle/internal/application/commands"
	"storyshuffle/internal/domain"
)

// manuscriptFlags are shared by the commands that take a manuscript file
type manuscriptFlags struct {
	constraints string
	delimiter   string
	regex       bool
}

func (f *manuscriptFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.constraints, "constraints", "c", "", "TOML file with section constraints")
	cmd.Flags().StringVarP(&f.delimiter, "delimiter", "d", "", "section delimiter (default from config, \"* * *\")")
	cmd.Flags().BoolVar(&f.regex, "regex", false, "treat the delimiter as a regular expression")
}

func (f *manuscriptFlags) delimiterFor(cmd *cobra.Command) domain.Delimiter {
	d := cfg.DefaultDelimiter()
	if cmd.Flags().Changed("delimiter") {
		d.Pattern = f.delimiter
	}
	if cmd.Flags().Changed("regex") {
		d.IsRegex = f.regex
	}
	return d
}

// load reads the manuscript at path ("-" for stdin) and the constraint file
func (f *manuscriptFlags) load(cmd *cobra.Command, path string) (commands.Manuscript, error) {
	text, err := readManuscript(cmd, path)
	if err != nil {
		return commands.Manuscript{}, err
	}

	m := commands.Manuscript{Text: text, Delimiter: f.delimiterFor(cmd)}
	if f.constraints != "" {
		specs, err := tomlfile.NewConstraints().Load(f.constraints)
		if err != nil {
			return commands.Manuscript{}, err
		}
		m.Specs = specs
	}
	return m, nil
}

func readManuscript(cmd *cobra.Command, path string) (string, error) {
	if path != "-" {
		return filesystem.NewManuscripts().Read(path)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// seededRand returns the source for --seed, the configured seed, or nil for
// the process-wide source.
func seededRand(cmd *cobra.Command, seed uint64) domain.Rand {
	if cmd.Flags().Changed("seed") {
		return domain.NewSeededRand(seed)
	}
	if cfg.Seed != 0 {
		return domain.NewSeededRand(cfg.Seed)
	}
	return nil
}

// writeOutput writes text to path, or to stdout when path is empty
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
