package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"storyshuffle/internal/domain"
)

var (
	splitFlags manuscriptFlags
	splitFull  bool
)

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Print the numbered sections of a manuscript",
	Long: `Split a manuscript on its delimiter and print each section with its
number, the number used by constraints.

Examples:
  storyshuffle-cli split novel.txt
  storyshuffle-cli split novel.txt --delimiter '^#{2} ' --regex
  cat novel.txt | storyshuffle-cli split - --full`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readManuscript(cmd, args[0])
		if err != nil {
			return err
		}
		sections, err := domain.Split(text, splitFlags.delimiterFor(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, section := range sections {
			if splitFull {
				fmt.Fprintf(out, "§%d\n%s\n\n", i+1, section)
				continue
			}
			fmt.Fprintf(out, "§%-3d %s\n", i+1, domain.Excerpt(section, 72))
		}
		return nil
	},
}

func init() {
	splitCmd.Flags().StringVarP(&splitFlags.delimiter, "delimiter", "d", "", "section delimiter (default from config, \"* * *\")")
	splitCmd.Flags().BoolVar(&splitFlags.regex, "regex", false, "treat the delimiter as a regular expression")
	splitCmd.Flags().BoolVar(&splitFull, "full", false, "print whole sections instead of excerpts")
	rootCmd.AddCommand(splitCmd)
}
