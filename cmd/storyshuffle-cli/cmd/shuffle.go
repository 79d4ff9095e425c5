package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"storyshuffle/internal/adapters/clipboard"
	"storyshuffle/internal/adapters/filesystem"
	"storyshuffle/internal/application/commands"
	"storyshuffle/internal/ports"
)

var (
	shuffleFlags manuscriptFlags
	shuffleSeed  uint64
	shuffleOut   string
	shuffleCopy  bool
)

var shuffleCmd = &cobra.Command{
	Use:   "shuffle <file>",
	Short: "Produce a random ordering that respects the constraints",
	Long: `Shuffle the sections of a manuscript. Fixed sections stay first or last,
and every section is placed before the sections listed in its "before"
constraint. The order is printed to stderr and the reassembled manuscript
to stdout, a file, or the clipboard.

Examples:
  storyshuffle-cli shuffle novel.txt --constraints novel.toml
  storyshuffle-cli shuffle novel.txt -c novel.toml --seed 42 --out draft.txt
  storyshuffle-cli shuffle novel.txt --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := shuffleFlags.load(cmd, args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewShuffleManuscriptCommand(m, seededRand(cmd, shuffleSeed)).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), result.Message)

		if shuffleOut == "" && !shuffleCopy {
			fmt.Fprintln(cmd.OutOrStdout(), result.Assembled)
			return nil
		}
		return export(cmd, result.Assembled, shuffleCopy, shuffleOut)
	},
}

// export sends text to the clipboard and/or a file
func export(cmd *cobra.Command, text string, copyText bool, outPath string) error {
	var clip ports.Clipboard
	if copyText {
		sys := clipboard.NewSystem()
		if !sys.Available() {
			return fmt.Errorf("no clipboard utility found")
		}
		clip = sys
	}

	result, err := commands.NewExportCommand(clip, filesystem.NewManuscripts(), text, copyText, outPath).
		Execute(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), result.Message)
	return nil
}

func init() {
	shuffleFlags.register(shuffleCmd)
	shuffleCmd.Flags().Uint64Var(&shuffleSeed, "seed", 0, "seed for a reproducible ordering")
	shuffleCmd.Flags().StringVarP(&shuffleOut, "out", "o", "", "write the shuffled manuscript to this file")
	shuffleCmd.Flags().BoolVar(&shuffleCopy, "copy", false, "copy the shuffled manuscript to the clipboard")
	rootCmd.AddCommand(shuffleCmd)
}
