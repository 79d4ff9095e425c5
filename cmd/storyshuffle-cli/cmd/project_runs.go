package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"storyshuffle/internal/adapters/tomlfile"
	"storyshuffle/internal/application/commands"
	"storyshuffle/internal/domain"
)

var constrainReplace bool

var projectConstrainCmd = &cobra.Command{
	Use:   "constrain <name> <constraints.toml>",
	Short: "Apply a constraint file to a project",
	Long: `Apply the constraints in a TOML file to a stored project. Sections the
file mentions are updated; with --replace every other section is cleared.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := GetStore()
		if err != nil {
			return err
		}
		specs, err := tomlfile.NewConstraints().Load(args[1])
		if err != nil {
			return err
		}
		result, err := commands.NewConstrainProjectCommand(store, args[0], specs, constrainReplace).
			Execute(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range result.Check.Problems {
			fmt.Fprintf(cmd.OutOrStdout(), "§%d (%s): %s\n", p.Section, p.Kind, p.Message)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var projectConstraintsCmd = &cobra.Command{
	Use:   "constraints <name> <constraints.toml>",
	Short: "Save a project's constraints to a TOML file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := GetStore()
		if err != nil {
			return err
		}
		result, err := commands.NewShowProjectCommand(store, args[0], 0).Execute(cmd.Context())
		if err != nil {
			return err
		}
		specs := domain.Specs(result.Project.Constraints)
		if err := tomlfile.NewConstraints().Save(args[1], specs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d constraint(s) to %s\n", len(specs), args[1])
		return nil
	},
}

var (
	projectSeed uint64
	projectOut  string
	projectCopy bool
)

var projectShuffleCmd = &cobra.Command{
	Use:   "shuffle <name>",
	Short: "Shuffle a stored project and record the run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := GetStore()
		if err != nil {
			return err
		}
		result, err := commands.NewShuffleProjectCommand(store, args[0], seededRand(cmd, projectSeed)).
			Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), result.Message)

		if projectOut == "" && !projectCopy {
			fmt.Fprintln(cmd.OutOrStdout(), result.Assembled)
			return nil
		}
		return export(cmd, result.Assembled, projectCopy, projectOut)
	},
}

var historyLimit int

var projectHistoryCmd = &cobra.Command{
	Use:   "history <name>",
	Short: "List the recorded shuffles of a project, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := GetStore()
		if err != nil {
			return err
		}
		runs, err := commands.NewListRunsCommand(store, args[0], historyLimit).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s has not been shuffled yet\n", args[0])
			return nil
		}
		for _, r := range runs {
			printRun(cmd, r)
		}
		return nil
	},
}

func init() {
	projectConstrainCmd.Flags().BoolVar(&constrainReplace, "replace", false, "clear constraints on sections the file does not mention")
	projectShuffleCmd.Flags().Uint64Var(&projectSeed, "seed", 0, "seed for a reproducible ordering")
	projectShuffleCmd.Flags().StringVarP(&projectOut, "out", "o", "", "write the shuffled manuscript to this file")
	projectShuffleCmd.Flags().BoolVar(&projectCopy, "copy", false, "copy the shuffled manuscript to the clipboard")
	projectHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to list (0 for all)")

	projectCmd.AddCommand(projectConstrainCmd)
	projectCmd.AddCommand(projectConstraintsCmd)
	projectCmd.AddCommand(projectShuffleCmd)
	projectCmd.AddCommand(projectHistoryCmd)
}
