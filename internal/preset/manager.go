package preset

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned for operations on an unknown preset id.
var ErrNotFound = errors.New("preset not found")

// Manager holds the preset list and the active pointer. Whenever the list
// is non-empty the active id references one of its presets.
type Manager struct {
	presets  []Preset
	activeID string
	newID    func() string
}

// NewManager builds a manager from loaded state, healing a missing or
// dangling active id by selecting the first preset.
func NewManager(presets []Preset, activeID string) *Manager {
	m := &Manager{
		presets:  append([]Preset(nil), presets...),
		activeID: activeID,
		newID:    uuid.NewString,
	}
	m.heal()
	return m
}

func (m *Manager) heal() {
	if m.index(m.activeID) >= 0 {
		return
	}
	if len(m.presets) > 0 {
		m.activeID = m.presets[0].ID
	} else {
		m.activeID = ""
	}
}

func (m *Manager) index(id string) int {
	if id == "" {
		return -1
	}
	for i, p := range m.presets {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// List returns a copy of the presets in insertion order.
func (m *Manager) List() []Preset {
	return append([]Preset(nil), m.presets...)
}

// ActiveID returns the active preset id, or "" when there is none.
func (m *Manager) ActiveID() string {
	return m.activeID
}

// Active returns the active preset.
func (m *Manager) Active() (Preset, bool) {
	i := m.index(m.activeID)
	if i < 0 {
		return Preset{}, false
	}
	return m.presets[i], true
}

// Durations returns the active preset's study and rest minutes, falling
// back to StandardFocus when no preset exists.
func (m *Manager) Durations() (study, rest int) {
	p, ok := m.Active()
	if !ok {
		p = StandardFocus
	}
	return p.Study, p.Rest
}

// Add appends a new preset. It becomes active if none was.
func (m *Manager) Add(name string, study, rest int) (Preset, error) {
	if err := Validate(name, study, rest); err != nil {
		return Preset{}, err
	}
	p := Preset{
		ID:    m.newID(),
		Name:  strings.TrimSpace(name),
		Study: study,
		Rest:  rest,
	}
	m.presets = append(m.presets, p)
	if m.activeID == "" {
		m.activeID = p.ID
	}
	return p, nil
}

// Delete removes a preset. Deleting the active preset moves the pointer to
// the first remaining preset, or to none.
func (m *Manager) Delete(id string) error {
	i := m.index(id)
	if i < 0 {
		return ErrNotFound
	}
	m.presets = append(m.presets[:i:i], m.presets[i+1:]...)
	if m.activeID == id {
		m.activeID = ""
		m.heal()
	}
	return nil
}

// Activate makes id the active preset.
func (m *Manager) Activate(id string) error {
	if m.index(id) < 0 {
		return ErrNotFound
	}
	m.activeID = id
	return nil
}

// Find resolves a preset by id or, failing that, by case-insensitive name.
func (m *Manager) Find(ref string) (Preset, bool) {
	if i := m.index(ref); i >= 0 {
		return m.presets[i], true
	}
	for _, p := range m.presets {
		if strings.EqualFold(p.Name, ref) {
			return p, true
		}
	}
	return Preset{}, false
}
