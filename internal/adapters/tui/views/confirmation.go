package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"storyshuffle/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel asks a yes/no question and answers with one of two
// messages.
type ConfirmationModel struct {
	ViewState
	Question string
	Detail   string
	Keys     ConfirmKeyMap

	onConfirm func() tea.Msg
	onCancel  func() tea.Msg
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() *ConfirmationModel {
	return &ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// Ask sets the question and the messages sent for each answer
func (m *ConfirmationModel) Ask(question, detail string, onConfirm, onCancel func() tea.Msg) {
	m.Question = question
	m.Detail = detail
	m.onConfirm = onConfirm
	m.onCancel = onCancel
	m.ClearMessage()
}

// Init initializes the confirmation view
func (m *ConfirmationModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the confirmation view
func (m *ConfirmationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Cancel):
			return m, m.answer(m.onCancel)
		case key.Matches(msg, m.Keys.Confirm):
			return m, m.answer(m.onConfirm)
		}
	}
	return m, nil
}

func (m *ConfirmationModel) answer(fn func() tea.Msg) tea.Cmd {
	if fn == nil {
		return func() tea.Msg { return SwitchToSectionsMsg{} }
	}
	return func() tea.Msg { return fn() }
}

// View renders the confirmation view
func (m *ConfirmationModel) View() string {
	v := NewViewBuilder().Title("Confirm")
	if m.Detail != "" {
		v.Muted(m.Detail).BlankLine()
	}
	return v.Line(RenderConfirmPrompt(m.Question)).
		Message(m.Message, m.MessageErr).
		String()
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
