package views

import (
	"storyshuffle/internal/application/commands"
	"storyshuffle/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type SwitchToSectionsMsg struct{}

type SwitchToResultsMsg struct{}

type SwitchToDelimiterMsg struct{}

type SwitchToHelpMsg struct{}

// ShuffleRequestMsg asks the app to compute a new ordering
type ShuffleRequestMsg struct{}

// ShuffleDoneMsg carries the outcome of a shuffle
type ShuffleDoneMsg struct {
	Result *commands.ShuffleResult
	Err    error
}

// DelimiterChosenMsg carries a delimiter submitted from the delimiter form
type DelimiterChosenMsg struct {
	Delimiter domain.Delimiter
}

// OpenEditorMsg asks the app to open the manuscript in $EDITOR
type OpenEditorMsg struct{}

// OpenOutputMsg asks the app to open an exported file with the system viewer
type OpenOutputMsg struct {
	Path string
}

// QuitRequestMsg asks the app to save the project and exit
type QuitRequestMsg struct{}

// ExportDoneMsg carries the outcome of a copy or write
type ExportDoneMsg struct {
	Result *commands.ExportResult
	Err    error
}
