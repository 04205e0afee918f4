package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a focused single line field. A numeric field drops every
// printable key that is not a digit.
type TextInput struct {
	model   textinput.Model
	numeric bool
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return ti
}

// NewTextInput creates a free text field holding at most limit characters.
// A limit of zero means no limit.
func NewTextInput(placeholder string, limit int) TextInput {
	return TextInput{model: newInput(placeholder, limit)}
}

// NewNumberInput creates a field that accepts up to digits digits.
func NewNumberInput(placeholder string, digits int) TextInput {
	return TextInput{model: newInput(placeholder, digits), numeric: true}
}

// NewSecretInput creates a field that masks what is typed.
func NewSecretInput(placeholder string) TextInput {
	ti := newInput(placeholder, 0)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return TextInput{model: ti}
}

// Update handles key presses and cursor blinks.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && t.numeric && k.Text != "" {
		if _, err := strconv.Atoi(k.Text); err != nil {
			return t, nil
		}
	}
	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return t, cmd
}

// View renders the field.
func (t TextInput) View() string { return t.model.View() }

// Value is the raw text.
func (t TextInput) Value() string { return t.model.Value() }

// Text is the value without surrounding whitespace.
func (t TextInput) Text() string { return strings.TrimSpace(t.model.Value()) }

// Int parses a numeric field.
func (t TextInput) Int() (int, error) { return strconv.Atoi(t.Text()) }

// Focused reports whether the field takes key presses.
func (t TextInput) Focused() bool { return t.model.Focused() }

// Focus gives the field the cursor.
func (t *TextInput) Focus() tea.Cmd { return t.model.Focus() }

// Blur removes the cursor.
func (t *TextInput) Blur() { t.model.Blur() }

// Reset clears the value.
func (t *TextInput) Reset() { t.model.SetValue("") }
