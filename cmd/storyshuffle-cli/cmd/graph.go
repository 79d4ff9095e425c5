package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"storyshuffle/internal/adapters/graphviz"
	"storyshuffle/internal/application/commands"
)

var (
	graphFlags  manuscriptFlags
	graphFormat string
	graphOut    string
)

var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Draw the precedence graph of a manuscript",
	Long: `Draw the constraints of a manuscript as a directed graph: an edge from
§a to §b means §a must come before §b. Fixed sections are drawn bold and
sections caught in a paradox are drawn red.

Examples:
  storyshuffle-cli graph novel.txt -c novel.toml > novel.dot
  storyshuffle-cli graph novel.txt -c novel.toml --format svg --out novel.svg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if graphFormat != "dot" && graphFormat != "svg" {
			return fmt.Errorf("unknown format %q: use dot or svg", graphFormat)
		}

		m, err := graphFlags.load(cmd, args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewGraphCommand(m).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if !result.Acyclic {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: the constraints cannot all be satisfied")
		}

		dot := graphviz.ToDOT(result.Graph, result.Sections, result.Constraints)
		if graphFormat == "dot" {
			return writeOutput(cmd, graphOut, []byte(dot))
		}
		svg, err := graphviz.RenderSVG(cmd.Context(), dot)
		if err != nil {
			return err
		}
		return writeOutput(cmd, graphOut, svg)
	},
}

func init() {
	graphFlags.register(graphCmd)
	graphCmd.Flags().StringVarP(&graphFormat, "format", "f", "dot", "output format: dot or svg")
	graphCmd.Flags().StringVarP(&graphOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(graphCmd)
}
