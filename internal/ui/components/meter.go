package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/ui/theme"
)

const percentWidth = 6

// Meter is a horizontal fill bar for a ratio in [0, 1]. Values outside the
// range are clamped.
type Meter struct {
	Ratio float64
	Width int
	// Color of the filled part; theme.Primary when nil.
	Color color.Color
	// Percent appends the ratio as a whole percentage.
	Percent bool
}

// View renders the meter.
func (m Meter) View() string {
	ratio := min(max(m.Ratio, 0), 1)
	width := m.Width
	if m.Percent {
		width -= percentWidth
	}
	width = max(width, 4)
	filled := int(float64(width) * ratio)

	fill := m.Color
	if fill == nil {
		fill = theme.Primary
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", width-filled)))
	if m.Percent {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%*d%%", percentWidth-1, int(ratio*100))))
	}
	return b.String()
}
