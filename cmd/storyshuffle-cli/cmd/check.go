package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"storyshuffle/internal/application"
	"storyshuffle/internal/application/commands"
)

var checkFlags manuscriptFlags

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Report problems with a manuscript's constraints",
	Long: `Check every constraint for syntax errors and, when the lists are well
formed, for paradoxes: rules that contradict each other so no ordering can
satisfy them all.

Exits with an error when the manuscript cannot be shuffled.

Examples:
  storyshuffle-cli check novel.txt --constraints novel.toml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := checkFlags.load(cmd, args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewCheckCommand(m).Execute(cmd.Context())
		if err != nil {
			return err
		}

		printCheck(cmd.OutOrStdout(), result)
		if !result.CanShuffle {
			return &application.ShuffleError{Reason: result.Message}
		}
		return nil
	},
}

func printCheck(out io.Writer, result *commands.CheckResult) {
	for _, r := range result.Rejected {
		fmt.Fprintf(out, "rejected: %s\n", r)
	}
	for _, p := range result.Problems {
		fmt.Fprintf(out, "§%d (%s): %s\n", p.Section, p.Kind, p.Message)
	}
	fmt.Fprintln(out, result.Message)
}

func init() {
	checkFlags.register(checkCmd)
	rootCmd.AddCommand(checkCmd)
}
