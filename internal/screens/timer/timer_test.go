package timer

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focusflow/internal/preset"
	"github.com/abhisek/focusflow/internal/session"
	tmr "github.com/abhisek/focusflow/internal/timer"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

type fakeSource struct {
	p        preset.Preset
	recorded []session.Session
}

func (f *fakeSource) ActivePreset() (preset.Preset, bool) { return f.p, true }

func (f *fakeSource) AppendSession(_ context.Context, s session.Session) {
	f.recorded = append(f.recorded, s)
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestScreen() (*Screen, *tmr.Machine, *testClock) {
	s, m, clk, _ := newRecordingScreen()
	return s, m, clk
}

func newRecordingScreen() (*Screen, *tmr.Machine, *testClock, *fakeSource) {
	clk := &testClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	m := tmr.New(clk, tmr.Durations{Study: 1, Rest: 1})
	src := &fakeSource{p: preset.Pomodoro}
	s := New(m, src)
	s.newID = func() string { return "fixed-id" }
	return s, m, clk, src
}

func finishStudy(t *testing.T, m *tmr.Machine, clk *testClock, gen int) {
	t.Helper()
	clk.now = clk.now.Add(60 * time.Second)
	if ev := m.HandleTick(gen); !ev.Completed {
		t.Fatal("expected completion")
	}
}

func TestSpaceStartsAndPauses(t *testing.T) {
	s, m, _ := newTestScreen()

	_, cmd := s.Update(keyPress(' '))
	if cmd == nil {
		t.Fatal("start should schedule a tick")
	}
	if !m.Running() {
		t.Fatal("expected running")
	}

	_, cmd = s.Update(keyPress(' '))
	if cmd != nil {
		t.Error("pause should not schedule a tick")
	}
	if got := m.Snapshot().Status; got != tmr.Paused {
		t.Errorf("status = %v, want paused", got)
	}
}

func TestExtendAndReset(t *testing.T) {
	s, m, _ := newTestScreen()

	s.Update(keyPress('e'))
	if got := m.Snapshot().Remaining; got != 60+tmr.ExtendSeconds {
		t.Errorf("remaining after extend = %d", got)
	}
	s.Update(keyPress('r'))
	if got := m.Snapshot().Remaining; got != 60 {
		t.Errorf("remaining after reset = %d", got)
	}
}

func TestFeedbackSubmit(t *testing.T) {
	s, m, clk, src := newRecordingScreen()
	gen, _ := m.Start()
	finishStudy(t, m, clk, gen)
	s.PromptFeedback()

	if !s.CapturingInput() {
		t.Fatal("notes prompt should capture input")
	}
	// Timer keys are text now.
	s.Update(keyPress('r'))
	if m.Snapshot().Status != tmr.AwaitingFeedback {
		t.Fatal("reset must not bypass feedback")
	}

	s.Update(specialKey(tea.KeyEnter))
	if len(src.recorded) != 1 {
		t.Fatalf("recorded %d sessions, want 1 before Update returns", len(src.recorded))
	}
	got := src.recorded[0]
	if got.Notes != "r" || got.Type != session.Study || got.Duration != 1 {
		t.Errorf("unexpected session %+v", got)
	}
	snap := m.Snapshot()
	if snap.Type != session.Rest || snap.Status != tmr.Idle || snap.Remaining != 60 {
		t.Errorf("expected Rest.Idle with 60s, got %+v", snap)
	}
}

func TestFeedbackDismiss(t *testing.T) {
	s, m, clk, src := newRecordingScreen()
	gen, _ := m.Start()
	finishStudy(t, m, clk, gen)
	s.PromptFeedback()

	s.Update(specialKey(tea.KeyEscape))
	if len(src.recorded) != 1 {
		t.Fatalf("recorded %d sessions, want 1", len(src.recorded))
	}
	if got := src.recorded[0]; got.Notes != session.DismissedNotes || got.ID != "fixed-id" {
		t.Errorf("unexpected session %+v", got)
	}
}

func TestViewShowsClockAndPrompt(t *testing.T) {
	s, m, clk := newTestScreen()
	out := s.View(80, 24)
	for _, want := range []string{"Time to focus", "01:00", "Pomodoro"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	gen, _ := m.Start()
	finishStudy(t, m, clk, gen)
	if out := s.View(80, 24); !strings.Contains(out, "Study session complete") {
		t.Error("expected notes prompt")
	}
}
