package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focusflow/internal/ui/theme"
)

// MenuItem is one row of a Menu. Disabled rows are shown but the cursor
// never lands on them.
type MenuItem struct {
	Label string
	// Detail is rendered dimmed after the label.
	Detail   string
	Marked   bool
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor. Enter runs the item's Action.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// SetItems replaces the rows. The cursor keeps its index when it still
// points at an enabled row.
func (m *Menu) SetItems(items []MenuItem) {
	m.Items = items
	m.Selected = min(m.Selected, max(len(items)-1, 0))
	if cur, ok := m.Current(); ok && cur.Disabled {
		if !m.move(1) {
			m.move(-1)
		}
	}
}

func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

// move steps the cursor to the next enabled row in direction dir and
// reports whether one was found.
func (m *Menu) move(dir int) bool {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return true
		}
	}
	return false
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if item, ok := m.Current(); ok && !item.Disabled && item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		style, cursor := theme.Unselected, "    "
		switch {
		case item.Disabled:
			style = theme.Hint
		case i == m.Selected:
			style, cursor = theme.Selected, "  ▸ "
		}
		label := item.Label
		if item.Marked {
			label += " ●"
		}
		b.WriteString(style.Render(cursor + label))
		if item.Detail != "" {
			b.WriteString("  " + theme.Hint.Render(item.Detail))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
