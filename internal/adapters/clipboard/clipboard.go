package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"storyshuffle/internal/ports"
)

// System implements ports.Clipboard with the platform clipboard
type System struct{}

// Ensure System implements Clipboard
var _ ports.Clipboard = (*System)(nil)

// NewSystem creates a new system clipboard
func NewSystem() *System {
	return &System{}
}

// Available reports whether a clipboard utility was found (xclip, xsel,
// wl-copy, pbcopy or the Windows API)
func (s *System) Available() bool {
	return !clipboard.Unsupported
}

// WriteAll copies text to the clipboard
func (s *System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unavailable: install xclip, xsel or wl-clipboard")
	}
	return clipboard.WriteAll(text)
}
