package timer

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/session"
	tmr "github.com/abhisek/focusflow/internal/timer"
	"github.com/abhisek/focusflow/internal/ui/components"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

func headline(snap tmr.Snapshot) string {
	if snap.Type == session.Rest {
		return "Time for a break"
	}
	return "Time to focus"
}

func (s *Screen) View(width, height int) string {
	snap := s.machine.Snapshot()
	if snap.Status == tmr.AwaitingFeedback {
		return s.renderFeedback(snap, width, height)
	}

	accent := theme.SessionColor(snap.Type == session.Study)
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(accent).Bold(true).Render(headline(snap)))
	b.WriteString("\n")
	if p, ok := s.src.ActivePreset(); ok {
		b.WriteString(center.Foreground(theme.TextDim).Render(p.Name + " · " + p.Summary()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	clock := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 6).
		Render(tmr.FormatClock(snap.Remaining))
	b.WriteString(center.Render(clock))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(snap.Status.String()))
	b.WriteString("\n\n")

	barWidth := min(width-8, 60)
	bar := components.Meter{Ratio: snap.Progress, Width: barWidth, Color: accent, Percent: true}
	b.WriteString(center.Render(bar.View()))
	b.WriteString("\n\n")

	b.WriteString(center.Render(s.renderControls(snap)))
	return b.String()
}

func (s *Screen) renderControls(snap tmr.Snapshot) string {
	label := "Start"
	if snap.Status == tmr.Running {
		label = "Pause"
	} else if snap.Status == tmr.Paused {
		label = "Resume"
	}
	return components.ControlBar(
		components.Control{Key: "space", Label: label, Primary: true},
		components.Control{Key: "r", Label: "Reset"},
		components.Control{Key: "e", Label: "+5 min"},
	)
}

func (s *Screen) renderFeedback(snap tmr.Snapshot, width, height int) string {
	minutes := 0
	if snap.Pending != nil {
		minutes = snap.Pending.Duration
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Study session complete!"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("You studied for %d min. Add a few notes for your analysis.", minutes)))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Enter to save · Esc to skip"))

	card := theme.Card.Width(min(width-4, 72)).Padding(1, 2).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
