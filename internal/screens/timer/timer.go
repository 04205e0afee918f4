// Package timer is the countdown screen: controls for the state machine
// and the notes prompt that closes every study session.
package timer

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focusflow/internal/preset"
	"github.com/abhisek/focusflow/internal/screen"
	"github.com/abhisek/focusflow/internal/session"
	tmr "github.com/abhisek/focusflow/internal/timer"
	"github.com/abhisek/focusflow/internal/ui/components"
	"github.com/abhisek/focusflow/internal/ui/layout"
)

// TickMsg drives the countdown. Gen ties it to one Start call so ticks
// from a cancelled countdown are ignored.
type TickMsg struct {
	Gen int
}

// Tick schedules the next TickMsg one second out.
func Tick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen}
	})
}

// Source is the application state the screen reads and records into.
type Source interface {
	ActivePreset() (preset.Preset, bool)
	// AppendSession stores a finished study session. It is called before
	// Update returns, so a quit on the next key cannot drop the session.
	AppendSession(ctx context.Context, s session.Session)
}

// Screen implements screen.Screen for the countdown.
type Screen struct {
	machine *tmr.Machine
	src     Source
	input   components.TextInput
	newID   func() string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.InputCapturer = (*Screen)(nil)

// New creates the timer screen over a shared machine.
func New(machine *tmr.Machine, src Source) *Screen {
	return &Screen{
		machine: machine,
		src:     src,
		input:   newNotesInput(),
		newID:   session.NewID,
	}
}

func newNotesInput() components.TextInput {
	return components.NewTextInput("What did you work on? How did it go?", 500)
}

func (s *Screen) Init() tea.Cmd {
	if s.awaiting() {
		return s.input.Focus()
	}
	return nil
}

func (s *Screen) Title() string {
	return "Timer"
}

func (s *Screen) awaiting() bool {
	return s.machine.Snapshot().Status == tmr.AwaitingFeedback
}

// CapturingInput is true while the notes prompt is open.
func (s *Screen) CapturingInput() bool {
	return s.awaiting()
}

// PromptFeedback clears and focuses the notes input. The root model calls
// it when a study session completes.
func (s *Screen) PromptFeedback() tea.Cmd {
	s.input = newNotesInput()
	return s.input.Focus()
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.awaiting() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save notes"},
			{Key: "Esc", Description: "Skip"},
		}
	}
	start := "Start"
	if s.machine.Running() {
		start = "Pause"
	}
	return []layout.KeyHint{
		{Key: "Space", Description: start},
		{Key: "r", Description: "Reset"},
		{Key: "e", Description: "+5 min"},
		{Key: "1-3", Description: "Tabs"},
		{Key: "q", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.awaiting() {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.awaiting() {
		return s.handleFeedbackKey(kmsg)
	}

	switch kmsg.String() {
	case "space", " ", "enter":
		if s.machine.Running() {
			s.machine.Pause()
			return s, nil
		}
		if gen, ok := s.machine.Start(); ok {
			return s, Tick(gen)
		}
	case "r":
		_ = s.machine.Reset()
	case "e", "+":
		_ = s.machine.Extend()
	}
	return s, nil
}

func (s *Screen) handleFeedbackKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	var (
		done session.Session
		err  error
	)
	switch msg.String() {
	case "enter":
		done, err = s.machine.SubmitFeedback(s.newID(), s.input.Value())
	case "esc":
		done, err = s.machine.DismissFeedback(s.newID())
	default:
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	if err != nil {
		return s, nil
	}
	s.src.AppendSession(context.Background(), done)
	s.input = newNotesInput()
	return s, nil
}
