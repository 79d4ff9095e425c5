package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"storyshuffle/internal/application/commands"
	"storyshuffle/internal/domain"
	"storyshuffle/internal/ports"
)

// RegisterProjectTools adds the tools backed by the project store.
func RegisterProjectTools(s *server.MCPServer, store ports.ProjectStore) {
	s.AddTool(listProjectsTool(), listProjectsHandler(store))
	s.AddTool(showProjectTool(), showProjectHandler(store))
	s.AddTool(shuffleProjectTool(), shuffleProjectHandler(store))
	s.AddTool(historyTool(), historyHandler(store))
}

// --- list_projects ---

func listProjectsTool() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List saved manuscript projects with their section and run counts."),
	)
}

func listProjectsHandler(store ports.ProjectStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projects, err := commands.NewListProjectsCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(projects, formatSummary)
	}
}

// --- show_project ---

func showProjectTool() mcp.Tool {
	return mcp.NewTool("show_project",
		mcp.WithDescription("Show a project's sections, constraints and any problems with them."),
		mcp.WithString("name",
			mcp.Description("Project name"),
			mcp.Required(),
		),
	)
}

func showProjectHandler(store ports.ProjectStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewShowProjectCommand(store, req.GetString("name", ""), 0).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s (delimiter %s)\n", result.Project.Name, result.Project.Delimiter)
		for i, text := range result.Check.Sections {
			c := result.Project.Constraints[i]
			fmt.Fprintf(&sb, "\n§%d  %s", i+1, domain.Excerpt(text, 60))
			if c.Fixed {
				sb.WriteString("  [fixed]")
			}
			if c.RawInput != "" {
				fmt.Fprintf(&sb, "  before: %s", c.RawInput)
			}
		}
		sb.WriteString("\n\n")
		sb.WriteString(formatCheck(result.Check))
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- shuffle_project ---

func shuffleProjectTool() mcp.Tool {
	return mcp.NewTool("shuffle_project",
		mcp.WithDescription("Shuffle a saved project, record the run in its history and return the reassembled text."),
		mcp.WithString("name",
			mcp.Description("Project name"),
			mcp.Required(),
		),
		mcp.WithNumber("seed",
			mcp.Description("Optional seed for a reproducible order"),
		),
	)
}

func shuffleProjectHandler(store ports.ProjectStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewShuffleProjectCommand(store, req.GetString("name", ""), seedArg(req)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s (run %s)\n\n%s", result.Message, result.Run.ID, result.Assembled)), nil
	}
}

// --- project_history ---

func historyTool() mcp.Tool {
	return mcp.NewTool("project_history",
		mcp.WithDescription("List past shuffles of a project, newest first."),
		mcp.WithString("name",
			mcp.Description("Project name"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of runs (default 10)"),
		),
	)
}

func historyHandler(store ports.ProjectStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		runs, err := commands.NewListRunsCommand(store, req.GetString("name", ""), req.GetInt("limit", 10)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(runs, formatRun)
	}
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatSummary(p domain.ProjectSummary) string {
	return fmt.Sprintf("%s  %d sections  %d runs  updated %s", p.Name, p.Sections, p.Runs, p.UpdatedAt.Format("2006-01-02 15:04"))
}

func formatRun(r domain.ShuffleRun) string {
	return fmt.Sprintf("%s  %s  %s", r.CreatedAt.Format("2006-01-02 15:04:05"), r.ID, domain.FormatOrder(r.Numbers()))
}
