package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"storyshuffle/internal/domain"
)

// DelimiterKeyMap defines the extra bindings of the delimiter form
type DelimiterKeyMap struct {
	ToggleRegex key.Binding
	Reset       key.Binding
}

var DelimiterKeys = DelimiterKeyMap{
	ToggleRegex: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "toggle regex"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "default"),
	),
}

// DelimiterModel edits the pattern that separates sections
type DelimiterModel struct {
	ViewState
	form    *InputForm
	isRegex bool
	preview func(domain.Delimiter) (int, error)
}

// NewDelimiterModel creates a delimiter form. preview reports how many
// sections a candidate delimiter would produce.
func NewDelimiterModel(preview func(domain.Delimiter) (int, error)) *DelimiterModel {
	m := &DelimiterModel{preview: preview}
	field := NewInputField("Delimiter", domain.DefaultDelimiterPattern, 200)
	field.Validate = func(pattern string) error {
		_, err := m.count(pattern)
		return err
	}
	m.form = NewInputForm(field)
	return m
}

// SetDelimiter loads d into the form
func (m *DelimiterModel) SetDelimiter(d domain.Delimiter) {
	m.isRegex = d.IsRegex
	m.form.SetValue(0, d.Pattern)
	m.ClearMessage()
}

// Delimiter returns the delimiter currently described by the form
func (m *DelimiterModel) Delimiter() domain.Delimiter {
	return domain.Delimiter{Pattern: m.form.Fields[0].Input.Value(), IsRegex: m.isRegex}
}

func (m *DelimiterModel) count(pattern string) (int, error) {
	if m.preview == nil {
		return 0, nil
	}
	return m.preview(domain.Delimiter{Pattern: pattern, IsRegex: m.isRegex})
}

// Init initializes the delimiter form
func (m *DelimiterModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the delimiter form
func (m *DelimiterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToSectionsMsg{} }

		case key.Matches(msg, DelimiterKeys.ToggleRegex):
			m.isRegex = !m.isRegex
			m.form.Revalidate()
			return m, nil

		case key.Matches(msg, DelimiterKeys.Reset):
			m.SetDelimiter(domain.DefaultDelimiter())
			return m, nil

		case key.Matches(msg, m.form.Keys.Submit):
			if err := m.form.Err(); err != nil {
				return m, nil
			}
			d := m.Delimiter()
			return m, func() tea.Msg { return DelimiterChosenMsg{Delimiter: d} }
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// View renders the delimiter form
func (m *DelimiterModel) View() string {
	mode := "literal text"
	if m.isRegex {
		mode = "regular expression"
	}

	v := NewViewBuilder().
		Title("Section delimiter").
		Subtitle("Matched as " + mode).
		Line(m.form.RenderField(0))

	if n, err := m.count(m.Delimiter().Pattern); err == nil && m.preview != nil {
		v.Muted(fmt.Sprintf("%d sections", n))
	}

	return v.Muted("Changing the delimiter clears every constraint.").
		Message(m.Message, m.MessageErr).
		BlankLine().
		Raw(m.form.RenderHelp("apply", DelimiterKeys.ToggleRegex, DelimiterKeys.Reset)).
		String()
}
