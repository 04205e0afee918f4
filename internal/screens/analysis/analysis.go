// Package analysis is the dashboard screen: pending study sessions, the
// latest AI analysis and the trend across past analyses.
package analysis

import (
	tea "charm.land/bubbletea/v2"

	an "github.com/abhisek/focusflow/internal/analysis"
	"github.com/abhisek/focusflow/internal/screen"
	"github.com/abhisek/focusflow/internal/ui/layout"
)

// Source is the read-only state the dashboard renders.
type Source interface {
	Analyses() []an.Analysis
	PendingCount() int
	Analyzing() bool
}

// Screen implements screen.Screen for the analysis dashboard.
type Screen struct {
	src Source
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the dashboard.
func New(src Source) *Screen {
	return &Screen{src: src}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Analysis"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "a", Description: "Analyze"},
		{Key: "1-3", Description: "Tabs"},
		{Key: "q", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "a", "enter":
			if s.src.Analyzing() {
				return s, nil
			}
			return s, func() tea.Msg { return screen.AnalyzeMsg{} }
		}
	}
	return s, nil
}
