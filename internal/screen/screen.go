// Package screen defines what the root model needs from a tab screen and
// the intent messages screens use to ask for state changes.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focusflow/internal/ui/layout"
)

// Screen is one tab. View draws only the content area; the root model
// adds the header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider screens list their keys in the footer.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer screens are collecting text. While CapturingInput is true
// the root model leaves printable keys, including tab shortcuts, alone.
type InputCapturer interface {
	CapturingInput() bool
}
