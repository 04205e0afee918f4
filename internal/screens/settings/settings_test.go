package settings

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focusflow/internal/appearance"
	"github.com/abhisek/focusflow/internal/preset"
	"github.com/abhisek/focusflow/internal/screen"
)

type fakeSource struct {
	presets []preset.Preset
	active  string
	theme   appearance.Theme
	hasKey  bool
}

func (f *fakeSource) Presets() []preset.Preset { return f.presets }
func (f *fakeSource) ActivePresetID() string   { return f.active }
func (f *fakeSource) Theme() appearance.Theme  { return f.theme }
func (f *fakeSource) HasAPIKey() bool          { return f.hasKey }

func newSource() *fakeSource {
	return &fakeSource{
		presets: preset.Defaults(),
		active:  preset.StandardFocus.ID,
		theme:   appearance.System,
	}
}

func press(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func typeText(s *Screen, text string) {
	for _, r := range text {
		s.Update(press(string(r)))
	}
}

// selectKind moves the cursor to the first entry of kind.
func selectKind(t *testing.T, s *Screen, kind entryKind) {
	t.Helper()
	for i, e := range s.entries {
		if e.kind == kind {
			s.menu.Selected = i
			return
		}
	}
	t.Fatalf("no entry of kind %d", kind)
}

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected command")
	}
	return cmd()
}

func TestThemeCycles(t *testing.T) {
	s := New(newSource(), "desktop on")
	selectKind(t, s, entryTheme)
	_, cmd := s.Update(press("enter"))
	msg, ok := run(t, cmd).(screen.SetThemeMsg)
	if !ok || msg.Theme != appearance.System.Next() {
		t.Errorf("unexpected %#v", msg)
	}
}

func TestActivateAndDeletePreset(t *testing.T) {
	s := New(newSource(), "")
	selectKind(t, s, entryPreset)
	s.menu.Selected++ // Pomodoro

	_, cmd := s.Update(press("enter"))
	if msg := run(t, cmd).(screen.ActivatePresetMsg); msg.ID != preset.Pomodoro.ID {
		t.Errorf("activate id = %q", msg.ID)
	}
	_, cmd = s.Update(press("d"))
	if msg := run(t, cmd).(screen.DeletePresetMsg); msg.ID != preset.Pomodoro.ID {
		t.Errorf("delete id = %q", msg.ID)
	}
}

func TestDeleteIgnoredOnOtherEntries(t *testing.T) {
	s := New(newSource(), "")
	selectKind(t, s, entryExport)
	if _, cmd := s.Update(press("d")); cmd != nil {
		t.Error("d should only delete presets")
	}
}

func TestAPIKeyFormMasksAndSaves(t *testing.T) {
	s := New(newSource(), "")
	selectKind(t, s, entryAPIKey)
	s.Update(press("enter"))
	if !s.CapturingInput() {
		t.Fatal("key form should capture input")
	}

	typeText(s, "abc123")
	if strings.Contains(s.View(100, 30), "abc123") {
		t.Error("API key must be masked")
	}

	_, cmd := s.Update(press("enter"))
	if msg := run(t, cmd).(screen.SaveAPIKeyMsg); msg.Key != "abc123" {
		t.Errorf("key = %q", msg.Key)
	}

	s.Update(screen.ResultMsg{Op: screen.OpSaveAPIKey, Text: "API key saved!"})
	if s.CapturingInput() {
		t.Error("form should close on success")
	}
	if !strings.Contains(s.View(100, 30), "API key saved!") {
		t.Error("missing confirmation")
	}
}

func TestAddPresetForm(t *testing.T) {
	s := New(newSource(), "")
	selectKind(t, s, entryAddPreset)
	s.Update(press("enter"))

	typeText(s, "Deep")
	s.Update(press("tab"))
	typeText(s, "9x0")
	s.Update(press("tab"))
	typeText(s, "20")

	_, cmd := s.Update(press("enter"))
	msg := run(t, cmd).(screen.AddPresetMsg)
	if msg.Name != "Deep" || msg.Study != 90 || msg.Rest != 20 {
		t.Errorf("unexpected %+v", msg)
	}

	s.Update(screen.ResultMsg{Op: screen.OpAddPreset, Text: "bad", Err: errors.New("invalid")})
	if !s.CapturingInput() {
		t.Error("form stays open on validation error")
	}

	s.Update(press("esc"))
	if s.CapturingInput() {
		t.Error("esc closes the form")
	}
}

func TestImportForm(t *testing.T) {
	s := New(newSource(), "")
	selectKind(t, s, entryImport)
	s.Update(press("enter"))

	_, cmd := s.Update(press("enter"))
	if cmd != nil {
		t.Error("empty path should not submit")
	}
	typeText(s, "b.json")
	_, cmd = s.Update(press("enter"))
	if msg := run(t, cmd).(screen.ImportMsg); msg.Path != "b.json" {
		t.Errorf("path = %q", msg.Path)
	}
}

func TestViewListsState(t *testing.T) {
	src := newSource()
	src.hasKey = true
	s := New(src, "desktop on, bell off")
	out := s.View(100, 30)
	for _, want := range []string{"System", "saved", "desktop on, bell off", "Standard Focus", "Pomodoro", "Export backup"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
