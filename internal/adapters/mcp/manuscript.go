package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"storyshuffle/internal/adapters/tomlfile"
	"storyshuffle/internal/application/commands"
	"storyshuffle/internal/domain"
)

// RegisterManuscriptTools adds the stateless manuscript tools to the MCP
// server. Each call carries the full manuscript.
func RegisterManuscriptTools(s *server.MCPServer, defaults domain.Delimiter) {
	s.AddTool(splitTool(), splitHandler(defaults))
	s.AddTool(checkTool(), checkHandler(defaults))
	s.AddTool(shuffleTool(), shuffleHandler(defaults))
}

func manuscriptOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("manuscript",
			mcp.Description("Full manuscript text"),
			mcp.Required(),
		),
		mcp.WithString("delimiter",
			mcp.Description("Section delimiter. Defaults to the configured delimiter (usually \"* * *\")."),
		),
		mcp.WithBoolean("delimiter_is_regex",
			mcp.Description("Treat the delimiter as a regular expression"),
		),
	}
}

func constraintOption() mcp.ToolOption {
	return mcp.WithString("constraints",
		mcp.Description("Constraints in TOML: one [[section]] table per constrained section with number (1-based), optional fixed (first or last section only) and optional before (comma-separated section numbers that must come later)."),
	)
}

// --- split_manuscript ---

func splitTool() mcp.Tool {
	return mcp.NewTool("split_manuscript",
		append([]mcp.ToolOption{
			mcp.WithDescription("Split a manuscript into numbered sections at its delimiter."),
		}, manuscriptOptions()...)...,
	)
}

func splitHandler(defaults domain.Delimiter) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		m, err := manuscriptArg(req, defaults)
		if err != nil {
			return toolError(err)
		}
		sections, err := domain.Split(m.Text, m.Delimiter)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatSections(sections)), nil
	}
}

// --- check_constraints ---

func checkTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Check a manuscript's ordering constraints for malformed lists and paradoxes (sections that must come before themselves)."),
	}
	opts = append(opts, manuscriptOptions()...)
	opts = append(opts, constraintOption())
	return mcp.NewTool("check_constraints", opts...)
}

func checkHandler(defaults domain.Delimiter) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		m, err := manuscriptArg(req, defaults)
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewCheckCommand(m).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatCheck(result)), nil
	}
}

// --- shuffle_manuscript ---

func shuffleTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Reorder a manuscript's sections at random while honouring its constraints. Returns the new order and the reassembled text."),
	}
	opts = append(opts, manuscriptOptions()...)
	opts = append(opts, constraintOption(),
		mcp.WithNumber("seed",
			mcp.Description("Optional seed for a reproducible order"),
		),
	)
	return mcp.NewTool("shuffle_manuscript", opts...)
}

func shuffleHandler(defaults domain.Delimiter) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		m, err := manuscriptArg(req, defaults)
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewShuffleManuscriptCommand(m, seedArg(req)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", result.Message, result.Assembled)), nil
	}
}

// --- helpers ---

func manuscriptArg(req mcp.CallToolRequest, defaults domain.Delimiter) (commands.Manuscript, error) {
	text := req.GetString("manuscript", "")
	if strings.TrimSpace(text) == "" {
		return commands.Manuscript{}, fmt.Errorf("manuscript is required")
	}

	d := defaults
	if pattern := req.GetString("delimiter", ""); pattern != "" {
		d = domain.Delimiter{Pattern: pattern, IsRegex: req.GetBool("delimiter_is_regex", false)}
	}

	var specs []domain.ConstraintSpec
	if raw := req.GetString("constraints", ""); strings.TrimSpace(raw) != "" {
		parsed, err := tomlfile.Parse([]byte(raw))
		if err != nil {
			return commands.Manuscript{}, err
		}
		specs = parsed
	}

	return commands.Manuscript{Text: text, Delimiter: d, Specs: specs}, nil
}

// seedArg returns a seeded source when a non-negative seed was given.
func seedArg(req mcp.CallToolRequest) domain.Rand {
	seed := req.GetInt("seed", -1)
	if seed < 0 {
		return nil
	}
	return domain.NewSeededRand(uint64(seed))
}

func formatSections(sections []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d sections\n", len(sections))
	for i, s := range sections {
		fmt.Fprintf(&sb, "\n§%d\n%s\n", i+1, s)
	}
	return sb.String()
}

func formatCheck(result *commands.CheckResult) string {
	var sb strings.Builder
	sb.WriteString(result.Message)
	sb.WriteByte('\n')
	for _, r := range result.Rejected {
		fmt.Fprintf(&sb, "\nrejected: %s", r)
	}
	for _, p := range result.Problems {
		fmt.Fprintf(&sb, "\n§%d (%s): %s", p.Section, p.Kind, strings.TrimRight(p.Message, "\n"))
	}
	return sb.String()
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
