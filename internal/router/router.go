// Package router switches the content area between a fixed set of tab
// screens. Hidden screens keep their state, so a half-filled settings form
// or a pending feedback prompt survives a tab switch.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focusflow/internal/screen"
)

// SwitchMsg asks the router to show the screen at Index.
type SwitchMsg struct {
	Index int
}

// Router holds the tab screens and which one is showing.
type Router struct {
	screens []screen.Screen
	active  int
}

// New creates a router showing the first of screens.
func New(screens ...screen.Screen) *Router {
	return &Router{screens: screens}
}

// Switch shows screen i and returns its Init command. Switching to the
// current screen or to an unknown index does nothing.
func (r *Router) Switch(i int) tea.Cmd {
	if i == r.active || i < 0 || i >= len(r.screens) {
		return nil
	}
	r.active = i
	return r.screens[i].Init()
}

// Next shows the screen after the current one, wrapping around.
func (r *Router) Next() tea.Cmd {
	if len(r.screens) == 0 {
		return nil
	}
	return r.Switch((r.active + 1) % len(r.screens))
}

// Index is the position of the showing screen.
func (r *Router) Index() int { return r.active }

// Len is the number of screens.
func (r *Router) Len() int { return len(r.screens) }

// Active returns the showing screen, or nil when there are none.
func (r *Router) Active() screen.Screen {
	if len(r.screens) == 0 {
		return nil
	}
	return r.screens[r.active]
}

// Update handles SwitchMsg and forwards everything else to the showing
// screen only.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if sw, ok := msg.(SwitchMsg); ok {
		return r.Switch(sw.Index)
	}
	if len(r.screens) == 0 {
		return nil
	}
	next, cmd := r.screens[r.active].Update(msg)
	r.screens[r.active] = next
	return cmd
}

// View renders the showing screen.
func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
