// Package settings is the settings screen: theme, API key, presets,
// notifications and backups.
package settings

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focusflow/internal/appearance"
	"github.com/abhisek/focusflow/internal/preset"
	"github.com/abhisek/focusflow/internal/screen"
	"github.com/abhisek/focusflow/internal/ui/components"
	"github.com/abhisek/focusflow/internal/ui/layout"
)

// Source is the read-only state the settings screen renders.
type Source interface {
	Presets() []preset.Preset
	ActivePresetID() string
	Theme() appearance.Theme
	HasAPIKey() bool
}

type mode int

const (
	modeBrowse mode = iota
	modeAPIKey
	modeAddPreset
	modeImport
)

type entryKind int

const (
	entryTheme entryKind = iota
	entryAPIKey
	entryNotify
	entryPreset
	entryAddPreset
	entryExport
	entryImport
)

type entry struct {
	kind     entryKind
	presetID string
}

// Screen implements screen.Screen for settings.
type Screen struct {
	src          Source
	notifyStatus string

	menu    components.Menu
	entries []entry
	mode    mode

	keyInput    components.TextInput
	pathInput   components.TextInput
	form        [3]components.TextInput
	formFocus   int
	notice      string
	noticeIsErr bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.InputCapturer = (*Screen)(nil)

// New creates the settings screen. notifyStatus describes the configured
// completion notifications.
func New(src Source, notifyStatus string) *Screen {
	s := &Screen{src: src, notifyStatus: notifyStatus}
	s.refresh()
	return s
}

func (s *Screen) Init() tea.Cmd {
	s.refresh()
	return nil
}

func (s *Screen) Title() string {
	return "Settings"
}

// CapturingInput is true while any form is open.
func (s *Screen) CapturingInput() bool {
	return s.mode != modeBrowse
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeAddPreset:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeAPIKey, modeImport:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if e, ok := s.current(); ok && e.kind == entryPreset {
		hints = append(hints, layout.KeyHint{Key: "d", Description: "Delete"})
	}
	return append(hints,
		layout.KeyHint{Key: "1-3", Description: "Tabs"},
		layout.KeyHint{Key: "q", Description: "Quit"},
	)
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// refresh rebuilds the menu from the current state, keeping the cursor.
func (s *Screen) refresh() {
	var (
		items   []components.MenuItem
		entries []entry
	)
	add := func(e entry, item components.MenuItem) {
		entries = append(entries, e)
		items = append(items, item)
	}

	add(entry{kind: entryTheme}, components.MenuItem{
		Label:  "Theme",
		Detail: themeLabel(s.src.Theme()),
		Action: func() tea.Cmd { return send(screen.SetThemeMsg{Theme: s.src.Theme().Next()}) },
	})

	keyDetail := "not set"
	if s.src.HasAPIKey() {
		keyDetail = "saved"
	}
	add(entry{kind: entryAPIKey}, components.MenuItem{
		Label:  "Gemini API key",
		Detail: keyDetail,
		Action: s.openKeyForm,
	})

	add(entry{kind: entryNotify}, components.MenuItem{
		Label:    "Notifications",
		Detail:   s.notifyStatus,
		Disabled: true,
	})

	active := s.src.ActivePresetID()
	for _, p := range s.src.Presets() {
		id := p.ID
		add(entry{kind: entryPreset, presetID: id}, components.MenuItem{
			Label:  p.Name,
			Detail: p.Summary(),
			Marked: id == active,
			Action: func() tea.Cmd { return send(screen.ActivatePresetMsg{ID: id}) },
		})
	}
	add(entry{kind: entryAddPreset}, components.MenuItem{
		Label:  "+ New preset",
		Action: s.openPresetForm,
	})

	add(entry{kind: entryExport}, components.MenuItem{
		Label:  "Export backup",
		Action: func() tea.Cmd { return send(screen.ExportMsg{}) },
	})
	add(entry{kind: entryImport}, components.MenuItem{
		Label:  "Import backup",
		Action: s.openImportForm,
	})

	s.entries = entries
	s.menu.SetItems(items)
}

func themeLabel(t appearance.Theme) string {
	t = t.OrDefault()
	return strings.ToUpper(string(t)[:1]) + string(t)[1:]
}

func (s *Screen) current() (entry, bool) {
	if s.menu.Selected < 0 || s.menu.Selected >= len(s.entries) {
		return entry{}, false
	}
	return s.entries[s.menu.Selected], true
}

func (s *Screen) openKeyForm() tea.Cmd {
	s.mode = modeAPIKey
	s.notice = ""
	s.keyInput = components.NewSecretInput("Paste your API key")
	return s.keyInput.Focus()
}

func (s *Screen) openImportForm() tea.Cmd {
	s.mode = modeImport
	s.notice = ""
	s.pathInput = components.NewTextInput("Path to a focusflow-backup-*.json file", 0)
	return s.pathInput.Focus()
}

func (s *Screen) openPresetForm() tea.Cmd {
	s.mode = modeAddPreset
	s.notice = ""
	s.form = [3]components.TextInput{
		components.NewTextInput("Name", 40),
		components.NewNumberInput("Study min", 3),
		components.NewNumberInput("Rest min", 3),
	}
	s.form[1].Blur()
	s.form[2].Blur()
	s.formFocus = 0
	return s.form[0].Focus()
}

func (s *Screen) closeForm() {
	s.mode = modeBrowse
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if res, ok := msg.(screen.ResultMsg); ok {
		return s.handleResult(res)
	}

	switch s.mode {
	case modeAPIKey:
		return s.updateKeyForm(msg)
	case modeImport:
		return s.updateImportForm(msg)
	case modeAddPreset:
		return s.updatePresetForm(msg)
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "d" {
		if e, ok := s.current(); ok && e.kind == entryPreset {
			return s, send(screen.DeletePresetMsg{ID: e.presetID})
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) handleResult(res screen.ResultMsg) (screen.Screen, tea.Cmd) {
	s.notice = res.Text
	s.noticeIsErr = res.Err != nil
	if res.Err == nil {
		s.closeForm()
	}
	s.refresh()
	return s, nil
}

func (s *Screen) updateKeyForm(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			s.closeForm()
			return s, nil
		case "enter":
			return s, send(screen.SaveAPIKeyMsg{Key: s.keyInput.Value()})
		}
	}
	var cmd tea.Cmd
	s.keyInput, cmd = s.keyInput.Update(msg)
	return s, cmd
}

func (s *Screen) updateImportForm(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			s.closeForm()
			return s, nil
		case "enter":
			path := s.pathInput.Text()
			if path == "" {
				return s, nil
			}
			return s, send(screen.ImportMsg{Path: path})
		}
	}
	var cmd tea.Cmd
	s.pathInput, cmd = s.pathInput.Update(msg)
	return s, cmd
}

func (s *Screen) updatePresetForm(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			s.closeForm()
			return s, nil
		case "tab", "down":
			return s, s.focusField((s.formFocus + 1) % len(s.form))
		case "shift+tab", "up":
			return s, s.focusField((s.formFocus + len(s.form) - 1) % len(s.form))
		case "enter":
			// Unparsable durations become 0 and fail validation.
			study, _ := s.form[1].Int()
			rest, _ := s.form[2].Int()
			return s, send(screen.AddPresetMsg{
				Name:  s.form[0].Value(),
				Study: study,
				Rest:  rest,
			})
		}
	}
	var cmd tea.Cmd
	s.form[s.formFocus], cmd = s.form[s.formFocus].Update(msg)
	return s, cmd
}

func (s *Screen) focusField(i int) tea.Cmd {
	s.form[s.formFocus].Blur()
	s.formFocus = i
	return s.form[i].Focus()
}

// presetFormSummary is shown under the form while typing.
func (s *Screen) presetFormSummary() string {
	name := s.form[0].Text()
	if name == "" {
		name = "New preset"
	}
	return fmt.Sprintf("%s: %s min study / %s min rest",
		name, orDash(s.form[1].Value()), orDash(s.form[2].Value()))
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
