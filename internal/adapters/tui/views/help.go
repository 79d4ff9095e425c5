package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"storyshuffle/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToSectionsMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Story Shuffle Help"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Reorder the sections of a manuscript under your constraints"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Sections"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move between sections"))
	b.WriteString(helpLine("n / p", "Next / previous page"))
	b.WriteString(helpLine("f", "Fix the first or last section in place"))
	b.WriteString(helpLine("b / Enter", "Edit the sections this one must precede"))
	b.WriteString(helpLine("d", "Change the section delimiter"))
	b.WriteString(helpLine("e", "Edit the manuscript in $EDITOR"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Ordering"))
	b.WriteString("\n")
	b.WriteString(helpLine("s", "Shuffle"))
	b.WriteString(helpLine("r", "Show the latest ordering"))
	b.WriteString(helpLine("c", "Copy the shuffled manuscript"))
	b.WriteString(helpLine("w", "Write the shuffled manuscript to a file"))
	b.WriteString(helpLine("o", "Open the written file"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Save and quit"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Successor lists"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Comma-separated section numbers, e.g. 3, 5, 7"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Sections listed there are placed after this one."))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Rules that contradict each other are reported as a paradox."))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
