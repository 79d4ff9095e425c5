package editor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"storyshuffle/internal/ports"
)

// Opener implements ports.EditorOpener
type Opener struct {
	lookPath func(string) (string, error)
	getenv   func(string) string
}

// Ensure Opener implements EditorOpener
var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookPath: exec.LookPath, getenv: os.Getenv}
}

// OpenFile opens a file in the user's preferred editor and waits for it
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor.
// The TUI hands it to tea.ExecProcess so the editor gets the terminal.
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.editorArgv()
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// editorArgv returns the editor command line. $EDITOR and $VISUAL may carry
// flags, e.g. "code --wait".
func (o *Opener) editorArgv() []string {
	for _, key := range []string{"EDITOR", "VISUAL"} {
		if argv := strings.Fields(o.getenv(key)); len(argv) > 0 {
			return argv
		}
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := o.lookPath(editor); err == nil {
			return []string{path}
		}
	}

	return nil
}

// SystemCommand returns the command that opens path with the desktop's
// default application, e.g. to preview an exported manuscript.
func SystemCommand(path string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", path), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}
