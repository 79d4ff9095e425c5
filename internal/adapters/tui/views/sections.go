package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"storyshuffle/internal/adapters/tui/styles"
	"storyshuffle/internal/application"
)

// SectionsKeyMap defines key bindings for the sections editor
type SectionsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Fix       key.Binding
	Before    key.Binding
	Shuffle   key.Binding
	Results   key.Binding
	Delimiter key.Binding
	Edit      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var SectionsKeys = SectionsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n", "pgdown"),
		key.WithHelp("n", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("p", "pgup"),
		key.WithHelp("p", "prev page"),
	),
	Fix: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fix"),
	),
	Before: key.NewBinding(
		key.WithKeys("b", "enter"),
		key.WithHelp("b", "before"),
	),
	Shuffle: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "shuffle"),
	),
	Results: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "result"),
	),
	Delimiter: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delimiter"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// EditKeyMap defines key bindings while a successor list is being edited
type EditKeyMap struct {
	Commit key.Binding
	Cancel key.Binding
}

var EditKeys = EditKeyMap{
	Commit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "done"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "revert"),
	),
}

// reserved rows for title, status, message and help
const sectionsChrome = 9

// SectionsModel lists the sections of the manuscript with their
// constraints and edits them in place.
type SectionsModel struct {
	ViewState
	session   *application.Session
	paginator *Paginator
	canEdit   bool

	editing  bool
	original string
	input    textinput.Model
}

// NewSectionsModel creates a sections editor over s. canEdit enables the
// external editor key.
func NewSectionsModel(s *application.Session, canEdit bool) *SectionsModel {
	input := textinput.New()
	input.Placeholder = "e.g. 3, 5, 7"
	input.CharLimit = 200
	input.Prompt = "before: "

	m := &SectionsModel{
		session:   s,
		paginator: NewPaginator(10),
		canEdit:   canEdit,
		input:     input,
	}
	m.Refresh()
	return m
}

// Init initializes the sections view
func (m *SectionsModel) Init() tea.Cmd {
	return nil
}

// Refresh resyncs the cursor with the session, e.g. after a re-split
func (m *SectionsModel) Refresh() {
	m.paginator.SetTotal(m.session.Len())
	if m.editing && m.paginator.Cursor() >= m.session.Len() {
		m.stopEditing()
	}
}

// SetSize updates the view dimensions and page size
func (m *SectionsModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.paginator.SetPageSize(height - sectionsChrome)
}

// Editing reports whether a successor list is being edited
func (m *SectionsModel) Editing() bool {
	return m.editing
}

// Cursor returns the selected section (1-based), or 0 when there are none
func (m *SectionsModel) Cursor() int {
	if m.session.Len() == 0 {
		return 0
	}
	return m.paginator.Cursor() + 1
}

// Update handles messages for the sections view
func (m *SectionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m, m.updateEditing(msg)
		}
		m.ClearMessage()

		switch {
		case key.Matches(msg, SectionsKeys.Quit):
			return m, func() tea.Msg { return QuitRequestMsg{} }

		case key.Matches(msg, SectionsKeys.Up):
			m.paginator.CursorUp()

		case key.Matches(msg, SectionsKeys.Down):
			m.paginator.CursorDown()

		case key.Matches(msg, SectionsKeys.NextPage):
			m.paginator.NextPage()

		case key.Matches(msg, SectionsKeys.PrevPage):
			m.paginator.PrevPage()

		case key.Matches(msg, SectionsKeys.Fix):
			m.toggleFixed()

		case key.Matches(msg, SectionsKeys.Before):
			return m, m.startEditing()

		case key.Matches(msg, SectionsKeys.Shuffle):
			return m, func() tea.Msg { return ShuffleRequestMsg{} }

		case key.Matches(msg, SectionsKeys.Results):
			if m.session.Result() == nil {
				m.SetMessage("Nothing shuffled yet", true)
				return m, nil
			}
			return m, func() tea.Msg { return SwitchToResultsMsg{} }

		case key.Matches(msg, SectionsKeys.Delimiter):
			return m, func() tea.Msg { return SwitchToDelimiterMsg{} }

		case key.Matches(msg, SectionsKeys.Edit):
			if !m.canEdit {
				m.SetMessage("No manuscript file to edit", true)
				return m, nil
			}
			return m, func() tea.Msg { return OpenEditorMsg{} }

		case key.Matches(msg, SectionsKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
	}

	return m, nil
}

func (m *SectionsModel) toggleFixed() {
	n := m.Cursor()
	if n == 0 {
		return
	}
	c, err := m.session.Constraint(n)
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	if err := m.session.SetFixed(n, !c.Fixed); err != nil {
		m.SetMessage("Only the first and last sections can be fixed", true)
	}
}

func (m *SectionsModel) startEditing() tea.Cmd {
	n := m.Cursor()
	if n == 0 {
		return nil
	}
	c, err := m.session.Constraint(n)
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	m.editing = true
	m.original = c.RawInput
	m.input.SetValue(c.RawInput)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *SectionsModel) stopEditing() {
	m.editing = false
	m.input.Blur()
}

// updateEditing applies every keystroke to the session so the list is
// validated live. Cancelling puts the original text back.
func (m *SectionsModel) updateEditing(msg tea.KeyMsg) tea.Cmd {
	n := m.Cursor()
	switch {
	case key.Matches(msg, EditKeys.Commit):
		m.stopEditing()
		return nil
	case key.Matches(msg, EditKeys.Cancel):
		_ = m.session.SetBefore(n, m.original)
		m.stopEditing()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	_ = m.session.SetBefore(n, m.input.Value())
	return cmd
}

// View renders the sections view
func (m *SectionsModel) View() string {
	v := NewViewBuilder().Title(m.title())

	if err := m.session.SplitError(); err != nil {
		v.Line(styles.ErrorMsg.Render(err.Error()))
	}
	v.Subtitle(m.status())

	constraints := m.session.Constraints()
	sections := m.session.Sections()
	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		selected := i == m.paginator.Cursor()
		v.Line(RenderSectionLine(i+1, sections[i], constraints[i], selected, m.Width))
		if selected && m.editing {
			v.Line("      " + m.input.View())
		}
		if problems := RenderSectionProblems(constraints[i]); problems != "" {
			v.Line(problems)
		}
	}
	if m.paginator.TotalPages() > 1 {
		v.Muted(fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages()))
	}

	v.Message(m.Message, m.MessageErr)

	if m.editing {
		return v.Help(EditKeys.Commit, EditKeys.Cancel).String()
	}
	return v.Help(
		SectionsKeys.Up, SectionsKeys.Down, SectionsKeys.Fix, SectionsKeys.Before,
		SectionsKeys.Shuffle, SectionsKeys.Delimiter, SectionsKeys.Edit,
		SectionsKeys.Help, SectionsKeys.Quit,
	).String()
}

func (m *SectionsModel) title() string {
	if name := m.session.Name(); name != "" {
		return "Story Shuffle · " + name
	}
	return "Story Shuffle"
}

func (m *SectionsModel) status() string {
	status := fmt.Sprintf("%d sections · delimiter %s", m.session.Len(), m.session.Delimiter())
	if m.session.CanShuffle() {
		return status + " · ready"
	}
	return status
}
