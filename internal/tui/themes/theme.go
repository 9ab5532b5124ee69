// Package themes defines the color schemes of the interactive form.
package themes

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/potax/internal/viewmodel"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Label         lipgloss.Style
	FocusedLabel  lipgloss.Style
	Missing       lipgloss.Style
	Code          lipgloss.Style
	ActiveTab     lipgloss.Style
	InactiveTab   lipgloss.Style
	RoundedBox    lipgloss.Style
	FocusedBox    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
}

// Tone returns the status style for an outcome tone.
func (t Theme) Tone(tone viewmodel.Tone) lipgloss.Style {
	switch tone {
	case viewmodel.ToneSuccess:
		return t.StatusSuccess
	case viewmodel.ToneWarning:
		return t.StatusWarning
	case viewmodel.ToneError:
		return t.StatusError
	default:
		return t.StatusInfo
	}
}

type palette struct {
	primary    string
	success    string
	warning    string
	err        string
	info       string
	foreground string
	subtle     string
	surface    string
	border     string
	muted      string
	onPrimary  string
}

func build(p palette) Theme {
	fg := lipgloss.Color(p.foreground)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.border)).
		Padding(0, 1)

	return Theme{
		Primary: lipgloss.Color(p.primary),
		Muted:   lipgloss.Color(p.muted),
		Border:  lipgloss.Color(p.border),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.subtle)),
		FocusedLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)),
		Missing: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(p.muted)),
		Code: lipgloss.NewStyle().
			Background(lipgloss.Color(p.surface)).
			Foreground(fg),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.onPrimary)).
			Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Padding(0, 1),
		RoundedBox: box,
		FocusedBox: box.BorderForeground(lipgloss.Color(p.primary)),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.warning)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.err)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)).
			Bold(true),
	}
}

// Default is the default theme.
var Default = build(palette{
	primary:    "#7c3aed",
	success:    "#10b981",
	warning:    "#f59e0b",
	err:        "#ef4444",
	info:       "#3b82f6",
	foreground: "#fafafa",
	subtle:     "#a3a3a3",
	surface:    "#262626",
	border:     "#404040",
	muted:      "#737373",
	onPrimary:  "#fafafa",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(palette{
	primary:    "#cba6f7",
	success:    "#a6e3a1",
	warning:    "#f9e2af",
	err:        "#f38ba8",
	info:       "#89dceb",
	foreground: "#cdd6f4",
	subtle:     "#a6adc8",
	surface:    "#313244",
	border:     "#45475a",
	muted:      "#6c7086",
	onPrimary:  "#1e1e2e",
})

var registry = map[string]Theme{
	"default":          Default,
	"catppuccin-mocha": CatppuccinMocha,
}

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	if theme, ok := registry[name]; ok {
		return theme
	}
	return Default
}

// Names lists the available theme names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
