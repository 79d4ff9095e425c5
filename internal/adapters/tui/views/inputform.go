package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"storyshuffle/internal/adapters/tui/styles"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Tab    key.Binding
}

// DefaultInputFormKeys returns the default input form key bindings
var DefaultInputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
}

// InputField is a labelled text input. When Validate is set the field is
// checked on every keystroke and the problem is shown under it.
type InputField struct {
	Label    string
	Input    textinput.Model
	Validate func(string) error

	err error
}

// InputForm manages multiple text input fields with focus handling
type InputForm struct {
	Fields       []InputField
	FocusedField int
	Keys         InputFormKeyMap
}

// NewInputForm creates a new input form with the given fields
func NewInputForm(fields ...InputField) *InputForm {
	form := &InputForm{
		Fields: fields,
		Keys:   DefaultInputFormKeys,
	}
	if len(fields) > 0 {
		form.Fields[0].Input.Focus()
	}
	return form
}

// NewInputField creates a new input field with the given label and placeholder
func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{
		Label: label,
		Input: input,
	}
}

// Init returns the blink command for the focused input
func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the input form.
// Returns (handled, cmd) where handled is true if the key was processed.
func (f *InputForm) Update(msg tea.Msg) (bool, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, f.Keys.Tab) {
		f.NextField()
		return true, nil
	}

	var cmd tea.Cmd
	if f.FocusedField >= 0 && f.FocusedField < len(f.Fields) {
		field := &f.Fields[f.FocusedField]
		field.Input, cmd = field.Input.Update(msg)
		f.check(f.FocusedField)
	}
	return false, cmd
}

// NextField moves focus to the next field
func (f *InputForm) NextField() {
	if len(f.Fields) <= 1 {
		return
	}
	f.Fields[f.FocusedField].Input.Blur()
	f.FocusedField = (f.FocusedField + 1) % len(f.Fields)
	f.Fields[f.FocusedField].Input.Focus()
}

// Value returns the value of a field by index
func (f *InputForm) Value(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[index].Input.Value())
}

// SetValue sets the value of a field by index and revalidates it
func (f *InputForm) SetValue(index int, value string) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	f.Fields[index].Input.SetValue(value)
	f.check(index)
}

// Err returns the first validation problem in the form
func (f *InputForm) Err() error {
	for i := range f.Fields {
		f.check(i)
		if f.Fields[i].err != nil {
			return f.Fields[i].err
		}
	}
	return nil
}

// Revalidate rechecks every field, e.g. after an option the validators
// depend on has changed.
func (f *InputForm) Revalidate() {
	for i := range f.Fields {
		f.check(i)
	}
}

func (f *InputForm) check(index int) {
	field := &f.Fields[index]
	if field.Validate == nil {
		field.err = nil
		return
	}
	field.err = field.Validate(field.Input.Value())
}

// RenderField renders a single field with appropriate styling
func (f *InputForm) RenderField(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}

	field := f.Fields[index]
	var b strings.Builder

	b.WriteString(styles.InputLabel.Render(field.Label))
	b.WriteString("\n")

	switch {
	case field.err != nil:
		b.WriteString(styles.InputInvalid.Render(field.Input.View()))
		b.WriteString("\n")
		b.WriteString(styles.ErrorMsg.Render(field.err.Error()))
	case index == f.FocusedField:
		b.WriteString(styles.InputFocused.Render(field.Input.View()))
	default:
		b.WriteString(styles.InputField.Render(field.Input.View()))
	}

	return b.String()
}

// RenderHelp renders the help text for the form
func (f *InputForm) RenderHelp(submitText string, extra ...key.Binding) string {
	var parts []string

	if len(f.Fields) > 1 {
		parts = append(parts, RenderKeyHelp(f.Keys.Tab))
	}
	parts = append(parts, styles.HelpKey.Render("enter")+" "+styles.HelpDesc.Render(submitText))
	for _, b := range extra {
		parts = append(parts, RenderKeyHelp(b))
	}
	parts = append(parts, RenderKeyHelp(f.Keys.Cancel))

	return strings.Join(parts, "  ")
}
