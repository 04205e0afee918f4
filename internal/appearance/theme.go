// Package appearance resolves the light/dark preference, following the
// desktop color scheme when the user picks "system".
package appearance

import "fmt"

// Theme is the user's appearance preference.
type Theme string

const (
	Light  Theme = "light"
	Dark   Theme = "dark"
	System Theme = "system"
)

// Themes lists every theme in display order.
var Themes = []Theme{Light, Dark, System}

// Parse converts s into a Theme.
func Parse(s string) (Theme, error) {
	switch t := Theme(s); t {
	case Light, Dark, System:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light, dark or system)", s)
	}
}

// OrDefault returns t, or System when t is not a known theme.
func (t Theme) OrDefault() Theme {
	if _, err := Parse(string(t)); err != nil {
		return System
	}
	return t
}

// Next cycles light -> dark -> system -> light.
func (t Theme) Next() Theme {
	for i, v := range Themes {
		if v == t {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return System
}

// IsDark combines the preference with the host's color-scheme signal.
func IsDark(t Theme, osDark bool) bool {
	switch t {
	case Dark:
		return true
	case Light:
		return false
	default:
		return osDark
	}
}
