// Package preset manages named study/rest duration pairs and the active
// preset pointer.
package preset

import (
	"fmt"
	"strings"
)

// Preset is a named pair of durations in minutes.
type Preset struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Study int    `json:"study"`
	Rest  int    `json:"rest"`
}

// Summary renders "45 min study / 15 min rest".
func (p Preset) Summary() string {
	return fmt.Sprintf("%d min study / %d min rest", p.Study, p.Rest)
}

// Built-in presets used when nothing is stored.
var (
	StandardFocus = Preset{ID: "default-45-15", Name: "Standard Focus", Study: 45, Rest: 15}
	Pomodoro      = Preset{ID: "default-25-5", Name: "Pomodoro", Study: 25, Rest: 5}
)

// Defaults returns a fresh copy of the built-in presets.
func Defaults() []Preset {
	return []Preset{StandardFocus, Pomodoro}
}

// ValidationError rejects preset input. No state changes when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid preset %s: %s", e.Field, e.Reason)
}

// Validate checks a preset's user-supplied fields.
func Validate(name string, study, rest int) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if study <= 0 {
		return &ValidationError{Field: "study", Reason: fmt.Sprintf("must be positive, got %d", study)}
	}
	if rest <= 0 {
		return &ValidationError{Field: "rest", Reason: fmt.Sprintf("must be positive, got %d", rest)}
	}
	return nil
}
