package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"storyshuffle/internal/adapters/tui/styles"
	"storyshuffle/internal/application"
	"storyshuffle/internal/application/commands"
	"storyshuffle/internal/ports"
)

// ResultsKeyMap defines key bindings for the results view
type ResultsKeyMap struct {
	Copy    key.Binding
	Write   key.Binding
	Open    key.Binding
	Shuffle key.Binding
	Back    key.Binding
	Quit    key.Binding
}

var ResultsKeys = ResultsKeyMap{
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Write: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "write"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	Shuffle: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "reshuffle"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "sections"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// reserved rows around the preview
const resultsChrome = 12

// ResultsModel shows the latest ordering and exports it
type ResultsModel struct {
	ViewState
	session   *application.Session
	clipboard ports.Clipboard
	sink      ports.ManuscriptSource

	keys    ResultsKeyMap
	preview viewport.Model
	form    *InputForm
	writing bool
	written string
}

// NewResultsModel creates a results view. clipboard or sink may be nil, in
// which case the matching key is disabled. outPath prefills the write form.
func NewResultsModel(s *application.Session, clipboard ports.Clipboard, sink ports.ManuscriptSource, outPath string) *ResultsModel {
	field := NewInputField("Output file", "shuffled.txt", 4096)
	field.Validate = func(path string) error {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("enter a file path")
		}
		return nil
	}
	form := NewInputForm(field)
	form.SetValue(0, outPath)

	m := &ResultsModel{
		session:   s,
		clipboard: clipboard,
		sink:      sink,
		keys:      ResultsKeys,
		preview:   viewport.New(80, 10),
		form:      form,
	}
	m.keys.Copy.SetEnabled(clipboard != nil)
	m.keys.Write.SetEnabled(sink != nil)
	m.keys.Open.SetEnabled(false)
	return m
}

// Init initializes the results view
func (m *ResultsModel) Init() tea.Cmd {
	return nil
}

// Refresh loads the latest ordering into the preview
func (m *ResultsModel) Refresh() {
	text, _ := m.session.Assembled()
	m.preview.SetContent(text)
	m.preview.GotoTop()
}

// SetSize updates the view dimensions and preview size
func (m *ResultsModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.preview.Width = max(width-8, 20)
	m.preview.Height = max(height-resultsChrome, 3)
}

// Written returns the path of the last file written, if any
func (m *ResultsModel) Written() string {
	return m.written
}

// Update handles messages for the results view
func (m *ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			m.SetMessage(msg.Err.Error(), true)
			return m, nil
		}
		if msg.Result.Written != "" {
			m.written = msg.Result.Written
			m.keys.Open.SetEnabled(true)
		}
		m.SetMessage(msg.Result.Message, false)
		return m, nil

	case tea.KeyMsg:
		if m.writing {
			return m, m.updateForm(msg)
		}
		m.ClearMessage()

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, func() tea.Msg { return QuitRequestMsg{} }

		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return SwitchToSectionsMsg{} }

		case key.Matches(msg, m.keys.Shuffle):
			return m, func() tea.Msg { return ShuffleRequestMsg{} }

		case key.Matches(msg, m.keys.Copy):
			return m, m.export(true, "")

		case key.Matches(msg, m.keys.Write):
			m.writing = true
			return m, m.form.Init()

		case key.Matches(msg, m.keys.Open):
			path := m.written
			return m, func() tea.Msg { return OpenOutputMsg{Path: path} }
		}
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m *ResultsModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.form.Keys.Cancel):
		m.writing = false
		return nil
	case key.Matches(msg, m.form.Keys.Submit):
		if err := m.form.Err(); err != nil {
			return nil
		}
		m.writing = false
		return m.export(false, m.form.Value(0))
	}
	_, cmd := m.form.Update(msg)
	return cmd
}

func (m *ResultsModel) export(copyText bool, outPath string) tea.Cmd {
	text, ok := m.session.Assembled()
	if !ok {
		m.SetMessage("Nothing shuffled yet", true)
		return nil
	}
	cmd := commands.NewExportCommand(m.clipboard, m.sink, text, copyText, outPath)
	return func() tea.Msg {
		result, err := cmd.Execute(context.Background())
		return ExportDoneMsg{Result: result, Err: err}
	}
}

// View renders the results view
func (m *ResultsModel) View() string {
	v := NewViewBuilder().Title("Shuffled order")

	result := m.session.Result()
	if result == nil {
		return v.Muted("Nothing shuffled yet").Help(m.keys.Back).String()
	}

	v.Line(RenderOrder(result.Numbers())).BlankLine()
	v.Line(styles.Preview.Render(m.preview.View()))
	v.Muted(fmt.Sprintf("%3.f%%", m.preview.ScrollPercent()*100))

	if m.writing {
		v.BlankLine().Line(m.form.RenderField(0))
		return v.Message(m.Message, m.MessageErr).
			Line("").
			Raw(m.form.RenderHelp("write")).
			String()
	}

	return v.Message(m.Message, m.MessageErr).
		Help(m.keys.Copy, m.keys.Write, m.keys.Open, m.keys.Shuffle, m.keys.Back, m.keys.Quit).
		String()
}
