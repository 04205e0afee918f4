package analysis

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	an "github.com/abhisek/focusflow/internal/analysis"
	"github.com/abhisek/focusflow/internal/ui/components"
	"github.com/abhisek/focusflow/internal/ui/layout"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

type metric struct {
	label string
	value int
}

// metrics lists the dashboard cards. Stress is shown as wellbeing so that
// higher is better on every card.
func metrics(a an.Analysis) []metric {
	return []metric{
		{"Concentration", a.Concentration},
		{"Study capacity", a.StudyCapacity},
		{"Wellbeing", a.Wellbeing()},
		{"Happiness", a.Happiness},
	}
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderPending(width))
	b.WriteString("\n\n")

	analyses := s.src.Analyses()
	if len(analyses) == 0 {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No analyses yet. Finish a few study sessions and press a."))
		return b.String()
	}

	latest := analyses[0]
	b.WriteString(renderCards(latest, width))
	b.WriteString("\n")
	b.WriteString(renderSummary(latest, width))
	if len(analyses) > 1 && !layout.IsCompactHeight(height) {
		b.WriteString("\n")
		b.WriteString(renderHistory(analyses, width))
	}
	return b.String()
}

func (s *Screen) renderPending(width int) string {
	count := s.src.PendingCount()
	noun := "sessions"
	if count == 1 {
		noun = "session"
	}
	line := theme.Body.Render(fmt.Sprintf("  %d study %s ready for analysis", count, noun))

	var action string
	switch {
	case s.src.Analyzing():
		action = lipgloss.NewStyle().Foreground(theme.Accent).Render("Analyzing your sessions...")
	case count == 0:
		action = theme.ButtonInactive.Render("Analyze")
	default:
		action = theme.ButtonActive.Render("a  Analyze")
	}
	gap := max(width-lipgloss.Width(line)-lipgloss.Width(action)-2, 1)
	return lipgloss.JoinHorizontal(lipgloss.Center, line, strings.Repeat(" ", gap), action)
}

func renderCards(a an.Analysis, width int) string {
	ms := metrics(a)
	cardWidth := max((width-4)/len(ms)-2, 14)
	if layout.IsCompactWidth(width) {
		cardWidth = max((width-4)/2-2, 14)
	}

	cards := make([]string, 0, len(ms))
	for _, m := range ms {
		color := theme.MetricColor(m.value)
		value := lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%d", m.value))
		bar := components.Meter{Ratio: float64(m.value) / 100, Width: cardWidth - 6, Color: color}
		body := theme.Hint.Render(m.label) + "\n" + value + "\n" + bar.View()
		cards = append(cards, theme.Card.Width(cardWidth).Render(body))
	}

	if layout.IsCompactWidth(width) {
		top := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1])
		bottom := lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3])
		return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderSummary(a an.Analysis, width int) string {
	inner := max(width-8, 20)
	var b strings.Builder
	b.WriteString(theme.Selected.Render("Summary"))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  %s · %d sessions · %d min",
		a.Date.Local().Format("Jan 2, 15:04"), a.SessionCount, a.TotalStudyDuration)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(inner).Render(a.Summary))
	b.WriteString("\n\n")
	b.WriteString(theme.Selected.Render("Suggestions"))
	b.WriteString("\n")
	for _, sug := range a.Suggestions {
		b.WriteString(theme.Body.Width(inner).Render("• " + sug))
		b.WriteString("\n")
	}
	return theme.Card.Width(width - 4).Render(strings.TrimRight(b.String(), "\n"))
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// sparkline renders values in 1..100 as block characters.
func sparkline(values []int) string {
	out := make([]rune, len(values))
	for i, v := range values {
		idx := (min(max(v, 1), 100) - 1) * len(sparkLevels) / 100
		out[i] = sparkLevels[idx]
	}
	return string(out)
}

// renderHistory charts the trend oldest first, limited to what fits.
func renderHistory(analyses []an.Analysis, width int) string {
	ordered := slices.Clone(analyses)
	slices.Reverse(ordered)
	if n := width - 30; n > 0 && len(ordered) > n {
		ordered = ordered[len(ordered)-n:]
	}

	series := []struct {
		label string
		pick  func(an.Analysis) int
	}{
		{"Concentration", func(a an.Analysis) int { return a.Concentration }},
		{"Study capacity", func(a an.Analysis) int { return a.StudyCapacity }},
		{"Happiness", func(a an.Analysis) int { return a.Happiness }},
	}

	var b strings.Builder
	b.WriteString(theme.Selected.Render("History"))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  last %d analyses", len(ordered))))
	b.WriteString("\n")
	for _, sr := range series {
		values := make([]int, len(ordered))
		for i, a := range ordered {
			values[i] = sr.pick(a)
		}
		last := values[len(values)-1]
		b.WriteString(fmt.Sprintf("%-16s", sr.label))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.MetricColor(last)).Render(sparkline(values)))
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d", last)))
		b.WriteString("\n")
	}
	return theme.Card.Width(width - 4).Render(strings.TrimRight(b.String(), "\n"))
}
