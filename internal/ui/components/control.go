package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/ui/theme"
)

// Control is a key the current screen responds to, drawn as a pill with
// the key to its left. Controls are display only; the screen owns the keys.
type Control struct {
	Key     string
	Label   string
	Primary bool
}

// View renders the control.
func (c Control) View() string {
	pill := theme.ButtonInactive.Render(c.Label)
	if c.Primary {
		pill = theme.ButtonActive.Render(c.Label)
	}
	if c.Key == "" {
		return pill
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, theme.Hint.Render(c.Key)+" ", pill)
}

// ControlBar lays controls out on one line.
func ControlBar(controls ...Control) string {
	parts := make([]string, 0, 2*len(controls))
	for i, c := range controls {
		if i > 0 {
			parts = append(parts, "   ")
		}
		parts = append(parts, c.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
