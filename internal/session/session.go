package session

import (
	"strings"
	"time"
)

// Type distinguishes study intervals from rest intervals.
type Type string

const (
	Study Type = "study"
	Rest  Type = "rest"
)

// Valid reports whether t is a known session type.
func (t Type) Valid() bool {
	return t == Study || t == Rest
}

// Label is the headline shown while a session of this type is loaded.
func (t Type) Label() string {
	if t == Rest {
		return "Rest"
	}
	return "Study"
}

// Placeholder notes recorded when the user leaves feedback blank.
const (
	EmptyNotes     = "No notes for this session."
	DismissedNotes = "No notes provided."
)

// Session is a completed interval. Sessions are immutable once created.
type Session struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Type      Type      `json:"type"`

	// Duration is in whole minutes.
	Duration int    `json:"duration"`
	Notes    string `json:"notes"`
}

// Pending is a finished study interval waiting for the user's notes.
// It resolves into a Session exactly once, through Submit or Dismiss.
type Pending struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  int
}

// Submit finalizes the pending record with the user's notes. Blank notes
// are replaced by EmptyNotes.
func (p Pending) Submit(id, notes string) Session {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		notes = EmptyNotes
	}
	return p.finalize(id, notes)
}

// Dismiss finalizes the pending record without notes.
func (p Pending) Dismiss(id string) Session {
	return p.finalize(id, DismissedNotes)
}

func (p Pending) finalize(id, notes string) Session {
	return Session{
		ID:        id,
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
		Type:      Study,
		Duration:  p.Duration,
		Notes:     notes,
	}
}

// FilterByType returns the sessions of type t, preserving order.
func FilterByType(sessions []Session, t Type) []Session {
	var out []Session
	for _, s := range sessions {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}

// TotalMinutes sums the durations of sessions.
func TotalMinutes(sessions []Session) int {
	total := 0
	for _, s := range sessions {
		total += s.Duration
	}
	return total
}
