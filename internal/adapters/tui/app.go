package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"storyshuffle/internal/adapters/editor"
	"storyshuffle/internal/adapters/tui/views"
	"storyshuffle/internal/application"
	"storyshuffle/internal/application/commands"
	"storyshuffle/internal/domain"
	"storyshuffle/internal/logging"
	"storyshuffle/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewSections ViewState = iota
	ViewResults
	ViewDelimiter
	ViewConfirm
	ViewHelp
)

// Deps are the adapters the TUI works with. Any of them may be nil; the
// features that need a missing one are disabled.
type Deps struct {
	Store     ports.ProjectStore
	Source    ports.ManuscriptSource
	Clipboard ports.Clipboard
	Editor    ports.EditorOpener
	Watcher   ports.ManuscriptWatcher

	// ManuscriptPath is the file the manuscript was read from
	ManuscriptPath string
	// OutputPath prefills the write form
	OutputPath string
}

// App is the main TUI application model
type App struct {
	ctx     context.Context
	logger  *log.Logger
	session *application.Session
	deps    Deps

	state     ViewState
	sections  *views.SectionsModel
	results   *views.ResultsModel
	delimiter *views.DelimiterModel
	confirm   *views.ConfirmationModel
	help      *views.HelpModel

	width  int
	height int
	err    error
}

// NewApp creates a new TUI application over s
func NewApp(ctx context.Context, s *application.Session, deps Deps) *App {
	canEdit := deps.Editor != nil && deps.Source != nil && deps.ManuscriptPath != ""
	return &App{
		ctx:       ctx,
		logger:    logging.FromContext(ctx),
		session:   s,
		deps:      deps,
		state:     ViewSections,
		sections:  views.NewSectionsModel(s, canEdit),
		results:   views.NewResultsModel(s, deps.Clipboard, deps.Source, deps.OutputPath),
		delimiter: views.NewDelimiterModel(previewSplit(s)),
		confirm:   views.NewConfirmationModel(),
		help:      views.NewHelpModel(),
	}
}

func previewSplit(s *application.Session) func(domain.Delimiter) (int, error) {
	return func(d domain.Delimiter) (int, error) {
		sections, err := domain.Split(s.Manuscript(), d)
		return len(sections), err
	}
}

// Err returns the error that stopped the project from being saved on quit
func (a *App) Err() error {
	return a.err
}

// State returns the current view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.waitForChange()
}

type manuscriptChangedMsg struct{}

type watchErrMsg struct{ err error }

type reloadMsg struct{ text string }

type editorFinishedMsg struct{ err error }

type outputOpenedMsg struct{ err error }

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.sections.SetSize(msg.Width, msg.Height)
		a.results.SetSize(msg.Width, msg.Height)
		a.delimiter.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToSectionsMsg:
		a.state = ViewSections
		a.sections.Refresh()
		return a, nil

	case views.SwitchToResultsMsg:
		a.state = ViewResults
		a.results.Refresh()
		return a, nil

	case views.SwitchToDelimiterMsg:
		a.state = ViewDelimiter
		a.delimiter.SetDelimiter(a.session.Delimiter())
		return a, a.delimiter.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.ShuffleRequestMsg:
		return a, a.shuffle()

	case views.ShuffleDoneMsg:
		if msg.Err != nil {
			a.state = ViewSections
			a.sections.SetMessage(msg.Err.Error(), true)
			return a, nil
		}
		a.state = ViewResults
		a.results.Refresh()
		a.results.SetMessage(msg.Result.Message, false)
		return a, nil

	case views.DelimiterChosenMsg:
		if err := a.session.SetDelimiter(msg.Delimiter); err != nil {
			a.delimiter.SetMessage(err.Error(), true)
			return a, nil
		}
		a.state = ViewSections
		a.sections.Refresh()
		a.sections.SetMessage(fmt.Sprintf("Delimiter set to %s: %d sections", msg.Delimiter, a.session.Len()), false)
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor()

	case views.OpenOutputMsg:
		return a, openOutput(msg.Path)

	case views.QuitRequestMsg:
		a.save()
		return a, tea.Quit

	case editorFinishedMsg:
		if msg.err != nil {
			a.sections.SetMessage(msg.err.Error(), true)
			return a, nil
		}
		return a, a.checkManuscript()

	case outputOpenedMsg:
		if msg.err != nil {
			a.results.SetMessage(msg.err.Error(), true)
		}
		return a, nil

	case manuscriptChangedMsg:
		return a, tea.Batch(a.checkManuscript(), a.waitForChange())

	case watchErrMsg:
		a.logger.Warn("watching manuscript", "err", msg.err)
		return a, a.waitForChange()

	case reloadMsg:
		a.reload(msg.text)
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewSections:
		_, cmd = a.sections.Update(msg)
	case ViewResults:
		_, cmd = a.results.Update(msg)
	case ViewDelimiter:
		_, cmd = a.delimiter.Update(msg)
	case ViewConfirm:
		_, cmd = a.confirm.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) shuffle() tea.Cmd {
	ctx, store, s := a.ctx, a.deps.Store, a.session
	return func() tea.Msg {
		if store != nil && s.Name() != "" {
			result, err := commands.ShuffleAndRecord(ctx, store, s)
			return views.ShuffleDoneMsg{Result: result, Err: err}
		}
		ordering, err := s.Shuffle(ctx)
		if err != nil {
			return views.ShuffleDoneMsg{Err: err}
		}
		return views.ShuffleDoneMsg{Result: &commands.ShuffleResult{
			Ordering: ordering,
			Message:  "Shuffled: " + domain.FormatOrder(ordering.Numbers()),
		}}
	}
}

// save stores the project on the way out. Unnamed sessions are not kept.
func (a *App) save() {
	if a.deps.Store == nil || a.session.Name() == "" {
		return
	}
	if err := a.deps.Store.SaveProject(a.ctx, a.session.Project()); err != nil {
		a.logger.Error("saving project", "project", a.session.Name(), "err", err)
		a.err = fmt.Errorf("failed to save project %s: %w", a.session.Name(), err)
		return
	}
	a.logger.Debug("project saved", "project", a.session.Name())
}

func (a *App) openEditor() tea.Cmd {
	if a.deps.Editor == nil || a.deps.ManuscriptPath == "" {
		return nil
	}

	cmd, err := a.deps.Editor.Command(a.deps.ManuscriptPath)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func openOutput(path string) tea.Cmd {
	return func() tea.Msg {
		cmd, err := editor.SystemCommand(path)
		if err != nil {
			return outputOpenedMsg{err: err}
		}
		return outputOpenedMsg{err: cmd.Start()}
	}
}

func (a *App) waitForChange() tea.Cmd {
	w := a.deps.Watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return manuscriptChangedMsg{}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

// checkManuscript rereads the manuscript file. Unchanged text is ignored;
// changed text replaces the manuscript, after confirmation when that would
// discard constraints.
func (a *App) checkManuscript() tea.Cmd {
	if a.deps.Source == nil || a.deps.ManuscriptPath == "" {
		return nil
	}
	text, err := a.deps.Source.Read(a.deps.ManuscriptPath)
	if err != nil {
		a.sections.SetMessage(err.Error(), true)
		return nil
	}
	if text == a.session.Manuscript() {
		return nil
	}
	if !hasConstraints(a.session.Constraints()) {
		a.reload(text)
		return nil
	}

	a.confirm.Ask(
		"Reload the manuscript?",
		a.deps.ManuscriptPath+" changed. Reloading clears every constraint.",
		func() tea.Msg { return reloadMsg{text: text} },
		func() tea.Msg { return views.SwitchToSectionsMsg{} },
	)
	a.state = ViewConfirm
	return nil
}

func (a *App) reload(text string) {
	if err := a.session.SetManuscript(text); err != nil {
		a.sections.SetMessage(err.Error(), true)
	} else {
		a.sections.SetMessage(fmt.Sprintf("Reloaded %d sections", a.session.Len()), false)
	}
	a.state = ViewSections
	a.sections.Refresh()
}

func hasConstraints(constraints []domain.Constraint) bool {
	for _, c := range constraints {
		if c.Fixed || c.RawInput != "" {
			return true
		}
	}
	return false
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewResults:
		return a.results.View()
	case ViewDelimiter:
		return a.delimiter.View()
	case ViewConfirm:
		return a.confirm.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.sections.View()
	}
}
