package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/focusflow/internal/appearance"
	"github.com/abhisek/focusflow/internal/preset"
	"github.com/abhisek/focusflow/internal/screen"
	timerscreen "github.com/abhisek/focusflow/internal/screens/timer"
	"github.com/abhisek/focusflow/internal/session"
	"github.com/abhisek/focusflow/internal/timer"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

type recordingNotifier struct{ titles []string }

func (r *recordingNotifier) Notify(_ context.Context, title, _ string) error {
	r.titles = append(r.titles, title)
	return nil
}

func newTestModel(t *testing.T) (AppModel, *Controller, *stepClock) {
	t.Helper()
	ctrl, _ := newTestController(t, &fakeAnalyzer{})
	ctx := context.Background()
	p, err := ctrl.AddPreset(ctx, "Quick", 1, 1)
	require.NoError(t, err)
	require.NoError(t, ctrl.ActivatePreset(ctx, p.ID))

	clk := &stepClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	m := NewAppModel(Options{
		Controller: ctrl,
		Clock:      clk,
		ExportDir:  t.TempDir(),
	})
	return m, ctrl, clk
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func keyMsg(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	}
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

func TestStudyCompletionFlow(t *testing.T) {
	m, ctrl, clk := newTestModel(t)
	n := &recordingNotifier{}
	m.notifier = n

	m, cmd := update(t, m, keyMsg(" "))
	require.NotNil(t, cmd, "start schedules a tick")
	gen := m.machine.Gen()

	// Mid-countdown tick reschedules.
	clk.now = clk.now.Add(30 * time.Second)
	m, cmd = update(t, m, timerscreen.TickMsg{Gen: gen})
	assert.NotNil(t, cmd)
	assert.Equal(t, 30, m.machine.Snapshot().Remaining)

	// Wander off to settings, then let it finish.
	m, _ = update(t, m, keyMsg("3"))
	assert.Equal(t, TabSettings, m.router.Index())

	clk.now = clk.now.Add(30 * time.Second)
	m, cmd = update(t, m, timerscreen.TickMsg{Gen: gen})
	require.NotNil(t, cmd)
	assert.Equal(t, TabTimer, m.router.Index(), "completion returns to the timer")
	assert.Equal(t, timer.AwaitingFeedback, m.machine.Snapshot().Status)

	assert.Nil(t, m.notifyCmd(session.Study)())
	assert.Equal(t, []string{"Study session complete"}, n.titles)

	// Tab keys are text while the notes prompt is open.
	m, _ = update(t, m, keyMsg("2"))
	assert.Equal(t, TabTimer, m.router.Index())

	m, _ = update(t, m, keyMsg("enter"))

	sessions := ctrl.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, session.Study, sessions[0].Type)
	assert.Equal(t, 1, sessions[0].Duration)
	assert.Equal(t, "2", sessions[0].Notes)

	snap := m.machine.Snapshot()
	assert.Equal(t, session.Rest, snap.Type)
	assert.Equal(t, timer.Idle, snap.Status)
	assert.Equal(t, 60, snap.Remaining)
}

func TestStaleTickIgnored(t *testing.T) {
	m, _, clk := newTestModel(t)
	m, _ = update(t, m, keyMsg(" "))
	gen := m.machine.Gen()
	m, _ = update(t, m, keyMsg(" ")) // pause

	clk.now = clk.now.Add(5 * time.Second)
	_, cmd := update(t, m, timerscreen.TickMsg{Gen: gen})
	assert.Nil(t, cmd, "a paused countdown stops ticking")
}

func TestQuitRecordsPendingSession(t *testing.T) {
	m, ctrl, clk := newTestModel(t)
	m, _ = update(t, m, keyMsg(" "))
	clk.now = clk.now.Add(time.Minute)
	m, _ = update(t, m, timerscreen.TickMsg{Gen: m.machine.Gen()})

	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	sessions := ctrl.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, session.DismissedNotes, sessions[0].Notes)
}

func TestQuitRightAfterNotesKeepsSession(t *testing.T) {
	m, ctrl, clk := newTestModel(t)
	m, _ = update(t, m, keyMsg(" "))
	clk.now = clk.now.Add(time.Minute)
	m, _ = update(t, m, timerscreen.TickMsg{Gen: m.machine.Gen()})
	m, _ = update(t, m, keyMsg("x"))

	// Any command from the notes key is dropped, as tea.Quit would drop it.
	m, _ = update(t, m, keyMsg("enter"))
	_, cmd := update(t, m, keyMsg("q"))
	require.NotNil(t, cmd)

	sessions := ctrl.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, "x", sessions[0].Notes)
}

func TestPresetEditKeepsPausedCountdown(t *testing.T) {
	m, _, clk := newTestModel(t)
	m, _ = update(t, m, screen.ActivatePresetMsg{ID: preset.Pomodoro.ID})
	m, _ = update(t, m, keyMsg(" "))
	clk.now = clk.now.Add(10 * time.Minute)
	m, _ = update(t, m, timerscreen.TickMsg{Gen: m.machine.Gen()})
	m, _ = update(t, m, keyMsg(" "))
	before := m.machine.Snapshot()
	require.Equal(t, timer.Paused, before.Status)
	require.Equal(t, 15*60, before.Remaining)

	m, _ = update(t, m, screen.AddPresetMsg{Name: "Other", Study: 50, Rest: 10})
	m, _ = update(t, m, screen.ActivatePresetMsg{ID: preset.Pomodoro.ID})
	after := m.machine.Snapshot()
	assert.Equal(t, timer.Paused, after.Status, "active preset unchanged")
	assert.Equal(t, 15*60, after.Remaining)

	var other string
	for _, p := range m.ctrl.Presets() {
		if p.Name == "Other" {
			other = p.ID
		}
	}
	m, _ = update(t, m, screen.DeletePresetMsg{ID: other})
	assert.Equal(t, timer.Paused, m.machine.Snapshot().Status, "deleting an inactive preset")

	m, _ = update(t, m, screen.ActivatePresetMsg{ID: preset.StandardFocus.ID})
	after = m.machine.Snapshot()
	assert.Equal(t, timer.Idle, after.Status, "a different preset reloads the paused state")
	assert.Equal(t, 45*60, after.Remaining)
}

func TestSystemThemeFollowsOS(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	ctx := context.Background()
	t.Cleanup(func() { theme.Apply(false) })

	ctrl.SetTheme(ctx, appearance.System)
	m, _ = update(t, m, osThemeMsg{Dark: true})
	assert.True(t, theme.IsDark())
	m, _ = update(t, m, osThemeMsg{Dark: false})
	assert.False(t, theme.IsDark())
	m, _ = update(t, m, osThemeMsg{Dark: true})
	assert.True(t, theme.IsDark())

	m, _ = update(t, m, screen.SetThemeMsg{Theme: appearance.Light})
	assert.False(t, theme.IsDark())
	m, _ = update(t, m, osThemeMsg{Dark: true})
	assert.False(t, theme.IsDark(), "explicit light ignores the OS")

	m, _ = update(t, m, screen.SetThemeMsg{Theme: appearance.Dark})
	_, _ = update(t, m, osThemeMsg{Dark: false})
	assert.True(t, theme.IsDark(), "explicit dark ignores the OS")
}

func TestAnalyzeEmptyBannerClears(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, cmd := update(t, m, screen.AnalyzeMsg{})
	assert.Equal(t, MsgNoSessions, m.banner)
	assert.True(t, m.bannerErr)
	require.NotNil(t, cmd, "banner schedules its own removal")

	m, _ = update(t, m, clearBannerMsg{Seq: m.bannerSeq})
	assert.Empty(t, m.banner)
}

func TestAnalyzeRoundTrip(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	ctrl.AppendSession(context.Background(), session.Session{ID: "a", Type: session.Study, Duration: 25, Notes: "x"})

	m, cmd := update(t, m, screen.AnalyzeMsg{})
	require.NotNil(t, cmd)
	assert.True(t, ctrl.Analyzing())

	m, _ = update(t, m, cmd())
	assert.False(t, ctrl.Analyzing())
	assert.Len(t, ctrl.Analyses(), 1)
	assert.Zero(t, ctrl.PendingCount())
	assert.Equal(t, "Analysis ready.", m.banner)
}

func TestPresetChangeReloadsIdleTimer(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = update(t, m, screen.ActivatePresetMsg{ID: preset.Pomodoro.ID})
	assert.Equal(t, 25*60, m.machine.Snapshot().Remaining)

	m, _ = update(t, m, screen.AddPresetMsg{Name: "", Study: 1, Rest: 1})
	assert.Len(t, m.ctrl.Presets(), 3, "invalid preset rejected")
}

func TestExportImport(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	ctx := context.Background()
	ctrl.AppendSession(ctx, session.Session{ID: "a", Type: session.Study, Duration: 25, Notes: "x"})

	m.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	m, _ = update(t, m, screen.ExportMsg{})
	path := filepath.Join(m.exportDir, "focusflow-backup-2026-03-01.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sessions"`)

	ctrl.AppendSession(ctx, session.Session{ID: "b", Type: session.Study, Duration: 5, Notes: "y"})
	m, _ = update(t, m, screen.ImportMsg{Path: path})
	assert.Len(t, ctrl.Sessions(), 1)
	assert.Equal(t, MsgImported, m.banner)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"sessions": []}`), 0o600))
	_, _ = update(t, m, screen.ImportMsg{Path: bad})
	assert.Len(t, ctrl.Sessions(), 1)
}

func TestViewRendersFrame(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	out := m.render()
	for _, want := range []string{"FocusFlow", "Timer", "Analysis", "Settings", "01:00"} {
		assert.True(t, strings.Contains(out, want), "missing %q", want)
	}
}
