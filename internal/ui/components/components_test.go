package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b"},
		{Label: "c", Disabled: true},
		{Label: "d"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}
	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key("up"))
	if m.Selected != 1 {
		t.Errorf("after up = %d, want 1", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	type picked struct{}
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd {
		return func() tea.Msg { return picked{} }
	}}})
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(picked); !ok {
		t.Error("unexpected message from action")
	}
}

func TestMenuSetItemsClampsCursor(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b"}, {Label: "c"}})
	m.Selected = 2
	m.SetItems([]MenuItem{{Label: "a"}})
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected)
	}
	m.SetItems(nil)
	if _, ok := m.Current(); ok {
		t.Error("expected no current item in empty menu")
	}
}

func TestMenuViewMarksItems(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Pomodoro", Detail: "25 / 5 min", Marked: true}})
	out := m.View()
	for _, want := range []string{"Pomodoro", "25 / 5 min", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestNumberInputRejectsLetters(t *testing.T) {
	in := NewNumberInput("", 3)
	in, _ = in.Update(key("x"))
	in, _ = in.Update(key("4"))
	if in.Value() != "4" {
		t.Errorf("Value = %q, want %q", in.Value(), "4")
	}
	n, err := in.Int()
	if err != nil || n != 4 {
		t.Errorf("Int = %d, %v", n, err)
	}
}

func TestTextInputFocus(t *testing.T) {
	in := NewTextInput("notes", 10)
	if !in.Focused() {
		t.Fatal("new input should be focused")
	}
	in.Blur()
	in, _ = in.Update(key("a"))
	if in.Value() != "" {
		t.Errorf("blurred input took a key: %q", in.Value())
	}
	in.Focus()
	for _, k := range []string{" ", "a", " "} {
		in, _ = in.Update(key(k))
	}
	if in.Text() != "a" {
		t.Errorf("Text = %q, want %q", in.Text(), "a")
	}
}

func TestSecretInputMasks(t *testing.T) {
	in := NewSecretInput("key")
	in, _ = in.Update(key("s"))
	if in.Value() != "s" {
		t.Fatalf("Value = %q", in.Value())
	}
	if !strings.Contains(in.View(), "•") {
		t.Error("secret input should not echo its value")
	}
	in.Reset()
	if in.Value() != "" {
		t.Error("Reset should clear value")
	}
}

func TestMeterClamps(t *testing.T) {
	if out := (Meter{Ratio: 1.5, Width: 20, Percent: true}).View(); !strings.Contains(out, "100%") {
		t.Errorf("percent should clamp to 100, got %q", out)
	}
	if out := (Meter{Ratio: -1, Width: 10, Percent: true}).View(); !strings.Contains(out, "0%") {
		t.Errorf("percent should clamp to 0, got %q", out)
	}
}

func TestControlBarShowsKeys(t *testing.T) {
	out := ControlBar(Control{Key: "space", Label: "Start", Primary: true}, Control{Key: "r", Label: "Reset"})
	for _, want := range []string{"space", "Start", "r", "Reset"} {
		if !strings.Contains(out, want) {
			t.Errorf("bar missing %q", want)
		}
	}
}
