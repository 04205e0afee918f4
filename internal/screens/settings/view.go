package settings

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Settings"))
	b.WriteString("\n\n")

	panelWidth := min(width-4, 76)
	var body string
	switch s.mode {
	case modeAPIKey:
		body = theme.Selected.Render("Gemini API key") + "\n\n" +
			s.keyInput.View() + "\n\n" +
			theme.Hint.Render("Stored locally. Leave empty and press Enter to remove it.")
	case modeImport:
		body = theme.Selected.Render("Import backup") + "\n\n" +
			s.pathInput.View() + "\n\n" +
			theme.Hint.Render("Importing replaces your session and analysis history.")
	case modeAddPreset:
		labels := []string{"Name ", "Study", "Rest "}
		var f strings.Builder
		f.WriteString(theme.Selected.Render("New preset"))
		f.WriteString("\n\n")
		for i, in := range s.form {
			style := theme.Hint
			if i == s.formFocus {
				style = theme.Selected
			}
			f.WriteString(style.Render(labels[i]) + "  " + in.View() + "\n")
		}
		f.WriteString("\n")
		f.WriteString(theme.Hint.Render(s.presetFormSummary()))
		body = f.String()
	default:
		body = s.menu.View()
	}
	if s.notice != "" {
		style := theme.SuccessText
		if s.noticeIsErr {
			style = theme.ErrorText
		}
		body = strings.TrimRight(body, "\n") + "\n\n" + style.Render(s.notice)
	}

	panel := theme.Card.Width(panelWidth).Padding(1, 2).Render(strings.TrimRight(body, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, panel))
	return b.String()
}
