// Package layout draws the frame around the tab content: a header with the
// tab bar and a status slot, and a footer with key hints or a banner.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/ui/theme"
)

// Smallest terminal the frame is drawn in.
const (
	MinWidth  = 60
	MinHeight = 20
)

// Below these sizes screens switch to their compact arrangement.
const (
	compactWidth  = 90
	compactHeight = 30
)

// KeyHint is one key shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Tab is one entry of the header tab bar.
type Tab struct {
	Key   string
	Label string
}

func IsCompactWidth(width int) bool   { return width < compactWidth }
func IsCompactHeight(height int) bool { return height < compactHeight }

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Frame is everything drawn around the content.
type Frame struct {
	Tabs   []Tab
	Active int
	// Status is shown at the right of the header; may be empty.
	Status string
	Hints  []KeyHint
	// Banner replaces the hints while set.
	Banner string
}

// Render draws the frame at width x height. content is called with the
// size left between header and footer.
func (f Frame) Render(width, height int, content func(w, h int) string) string {
	if IsTooSmall(width, height) {
		return tooSmall(width, height)
	}
	header := bar(width, f.headerLine(width))
	footer := bar(width, "  "+f.footerLine())
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(content(width, bodyHeight))
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (f Frame) headerLine(width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  FocusFlow")
	tabs := f.tabBar()

	// Centre the tabs in the bordered width, keeping at least one space
	// either side.
	inner := max(width-4, 0)
	used := lipgloss.Width(name) + lipgloss.Width(tabs) + lipgloss.Width(f.Status)
	left := max((inner-lipgloss.Width(tabs))/2-lipgloss.Width(name), 1)
	right := max(inner-used-left, 1)
	return name + strings.Repeat(" ", left) + tabs + strings.Repeat(" ", right) + f.Status
}

func (f Frame) tabBar() string {
	on := lipgloss.NewStyle().Foreground(theme.Primary).Background(theme.Highlight).Bold(true)
	off := lipgloss.NewStyle().Foreground(theme.TextDim)
	parts := make([]string, len(f.Tabs))
	for i, t := range f.Tabs {
		style := off
		if i == f.Active {
			style = on
		}
		parts[i] = style.Render(" " + t.Key + " " + t.Label + " ")
	}
	return strings.Join(parts, " ")
}

func (f Frame) footerLine() string {
	if f.Banner != "" {
		return f.Banner
	}
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	parts := make([]string, len(f.Hints))
	for i, h := range f.Hints {
		parts[i] = key.Render(h.Key) + " " + theme.Hint.Render(h.Description)
	}
	return strings.Join(parts, "   ")
}

func bar(width int, line string) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(line)
}

func tooSmall(width, height int) string {
	msg := fmt.Sprintf("Terminal too small\n\nFocusFlow needs %d x %d.\nThis one is %d x %d.",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Body.Render(msg))
}
