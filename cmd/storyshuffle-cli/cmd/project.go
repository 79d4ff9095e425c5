package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storyshuffle/internal/adapters/filesystem"
	"storyshuffle/internal/application/commands"
	"storyshuffle/internal/domain"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage stored projects",
	Long: `A project keeps a manuscript, its delimiter and constraints, and the
history of shuffles, under a name.

Examples:
  storyshuffle-cli project import novel novel.txt
  storyshuffle-cli project constrain novel novel.toml
  storyshuffle-cli project shuffle novel --out draft.txt
  storyshuffle-cli project history novel`,
}

var (
	importDelimiter string
	importRegex     bool
)

var projectImportCmd = &cobra.Command{
	Use:   "import <name> <file>",
	Short: "Create or replace a project from a manuscript file",
	Long: `Import a manuscript under a name. Importing over an existing project
replaces its manuscript and clears its constraints; its history is kept.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := GetStore()
		if err != nil {
			return err
		}

		d := cfg.DefaultDelimiter()
		if cmd.Flags().Changed("delimiter") {
			d.Pattern = importDelimiter
		}
		if cmd.Flags().Changed("regex") {
			d.IsRegex = importRegex
		}

		result, err := commands.NewImportProjectCommand(store, filesystem.NewManuscripts(), args[0], args[1], d).
			Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := GetStore()
		if err != nil {
			return err
		}
		projects, err := commands.NewListProjectsCommand(store).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, p := range projects {
			fmt.Fprintf(out, "%-24s %4d sections %4d runs  %s\n",
				p.Name, p.Sections, p.Runs, p.UpdatedAt.Local().Format(time.DateTime))
		}
		return nil
	},
}

var showRuns int

var projectShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a project's sections, constraints and recent runs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := GetStore()
		if err != nil {
			return err
		}
		result, err := commands.NewShowProjectCommand(store, args[0], showRuns).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		p := result.Project
		fmt.Fprintf(out, "%s  delimiter %s\n\n", p.Name, p.Delimiter)
		for i, section := range result.Check.Sections {
			c := p.Constraints[i]
			line := fmt.Sprintf("§%-3d %s", i+1, domain.Excerpt(section, 56))
			if c.Fixed {
				line += "  [fixed]"
			}
			if c.RawInput != "" {
				line += "  before " + c.RawInput
			}
			fmt.Fprintln(out, line)
		}
		fmt.Fprintln(out)
		printCheck(out, result.Check)

		if len(result.Runs) > 0 {
			fmt.Fprintln(out, "\nRecent runs:")
			for _, r := range result.Runs {
				printRun(cmd, r)
			}
		}
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a project and its history",
	Long: `Delete a project, its constraints and every recorded run.

Warning: This operation cannot be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := GetStore()
		if err != nil {
			return err
		}
		result, err := commands.NewDeleteProjectCommand(store, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func printRun(cmd *cobra.Command, r domain.ShuffleRun) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s  %s\n",
		r.CreatedAt.Local().Format(time.DateTime), r.ID[:min(8, len(r.ID))], domain.FormatOrder(r.Numbers()))
}

func init() {
	projectImportCmd.Flags().StringVarP(&importDelimiter, "delimiter", "d", "", "section delimiter (default from config, \"* * *\")")
	projectImportCmd.Flags().BoolVar(&importRegex, "regex", false, "treat the delimiter as a regular expression")
	projectShowCmd.Flags().IntVar(&showRuns, "runs", 5, "number of recent runs to show")

	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectImportCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}
