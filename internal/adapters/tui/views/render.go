package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"storyshuffle/internal/adapters/tui/styles"
	"storyshuffle/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders the enabled key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderOrder renders section numbers joined by arrows
func RenderOrder(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = styles.SectionNumber.Render(fmt.Sprintf("§%d", n))
	}
	return strings.Join(parts, styles.OrderArrow.String())
}

// RenderSectionLine renders one row of the section list: number, fixed
// badge, excerpt and the raw successor list.
func RenderSectionLine(n int, text string, c domain.Constraint, selected bool, width int) string {
	number := fmt.Sprintf("§%-3d", n)

	var b strings.Builder
	if selected {
		b.WriteString(styles.Cursor)
		b.WriteString(styles.SectionSelected.Render(number))
	} else {
		b.WriteString(styles.NoMark)
		b.WriteString(styles.SectionNumber.Render(number))
	}
	b.WriteString(" ")

	if c.Fixed {
		b.WriteString(styles.FixedBadge.Render("fixed"))
		b.WriteString(" ")
	}
	if c.RawInput != "" {
		b.WriteString(styles.BeforeList.Render("before " + c.RawInput))
		b.WriteString(" ")
	}

	b.WriteString(styles.SectionExcerpt.Render(domain.Excerpt(text, excerptWidth(width))))
	return b.String()
}

// RenderSectionProblems renders the syntax problem and paradox report of a
// section, indented under its row.
func RenderSectionProblems(c domain.Constraint) string {
	var lines []string
	if !c.SyntaxValid && c.Problem != "" {
		lines = append(lines, "      "+styles.ErrorMsg.Render(c.Problem))
	}
	if c.HasParadox() {
		for _, line := range strings.Split(strings.TrimRight(c.Paradox, "\n"), "\n") {
			lines = append(lines, "      "+styles.ParadoxText.Render(strings.ReplaceAll(line, "\t", "  ")))
		}
	}
	return strings.Join(lines, "\n")
}

func excerptWidth(width int) int {
	if width <= 0 {
		return 60
	}
	return max(width-40, 20)
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString("\n")
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString("\n")
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw adds raw text without any formatting
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
