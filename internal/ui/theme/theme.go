package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is one complete color scheme.
type Palette struct {
	Primary   color.Color
	Study     color.Color
	Rest      color.Color
	Accent    color.Color
	Success   color.Color
	Warning   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgCard    color.Color
	Border    color.Color
	Highlight color.Color
}

// DarkPalette is used when the resolved theme is dark.
var DarkPalette = Palette{
	Primary:   lipgloss.Color("#60A5FA"), // Blue 400
	Study:     lipgloss.Color("#3B82F6"), // Blue 500
	Rest:      lipgloss.Color("#10B981"), // Emerald 500
	Accent:    lipgloss.Color("#F59E0B"), // Amber
	Success:   lipgloss.Color("#22C55E"),
	Warning:   lipgloss.Color("#EAB308"),
	Error:     lipgloss.Color("#F43F5E"),
	Text:      lipgloss.Color("#E2E8F0"), // Slate 200
	TextDim:   lipgloss.Color("#94A3B8"), // Slate 400
	BgCard:    lipgloss.Color("#1E293B"), // Slate 800
	Border:    lipgloss.Color("#334155"), // Slate 700
	Highlight: lipgloss.Color("#1E3A8A"), // Blue 900
}

// LightPalette is used when the resolved theme is light.
var LightPalette = Palette{
	Primary:   lipgloss.Color("#2563EB"), // Blue 600
	Study:     lipgloss.Color("#3B82F6"),
	Rest:      lipgloss.Color("#059669"), // Emerald 600
	Accent:    lipgloss.Color("#D97706"),
	Success:   lipgloss.Color("#16A34A"),
	Warning:   lipgloss.Color("#CA8A04"),
	Error:     lipgloss.Color("#E11D48"),
	Text:      lipgloss.Color("#334155"), // Slate 700
	TextDim:   lipgloss.Color("#64748B"), // Slate 500
	BgCard:    lipgloss.Color("#F1F5F9"), // Slate 100
	Border:    lipgloss.Color("#CBD5E1"), // Slate 300
	Highlight: lipgloss.Color("#DBEAFE"), // Blue 100
}

// Current colors. Apply swaps them.
var (
	Primary   color.Color
	Study     color.Color
	Rest      color.Color
	Accent    color.Color
	Success   color.Color
	Warning   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgCard    color.Color
	Border    color.Color
	Highlight color.Color
)

// Styles derived from the current colors.
var (
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	Body           lipgloss.Style
	Hint           lipgloss.Style
	Card           lipgloss.Style
	Selected       lipgloss.Style
	Unselected     lipgloss.Style
	ErrorText      lipgloss.Style
	SuccessText    lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

var dark bool

func init() {
	Apply(true)
}

// IsDark reports which palette is active.
func IsDark() bool {
	return dark
}

// Apply switches every color and style to the dark or light palette.
func Apply(isDark bool) {
	dark = isDark
	p := LightPalette
	if isDark {
		p = DarkPalette
	}

	Primary, Study, Rest, Accent = p.Primary, p.Study, p.Rest, p.Accent
	Success, Warning, Error = p.Success, p.Warning, p.Error
	Text, TextDim, BgCard, Border, Highlight = p.Text, p.TextDim, p.BgCard, p.Border, p.Highlight

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	ErrorText = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	SuccessText = lipgloss.NewStyle().
		Foreground(Success)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Foreground(TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}

// SessionColor returns the accent for a study (true) or rest session.
func SessionColor(study bool) color.Color {
	if study {
		return Study
	}
	return Rest
}

// MetricColor bands a 1-100 rating: above 75 is good, above 40 fair.
func MetricColor(v int) color.Color {
	switch {
	case v > 75:
		return Success
	case v > 40:
		return Warning
	default:
		return Error
	}
}
