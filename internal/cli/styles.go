// Package cli renders classification outcomes as terminal text and prompts
// for a request on stdin.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/potax/internal/viewmodel"
)

var (
	primaryColor = lipgloss.Color("#5B8DEF")
	subtleColor  = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	subtleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(16)

	// missingStyle marks the sentinel of a level the model left out.
	missingStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Italic(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)
)

type toneStyle struct {
	style lipgloss.Style
	icon  string
}

var toneStyles = map[viewmodel.Tone]toneStyle{
	viewmodel.ToneInfo:    {lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1D3")), "ℹ️"},
	viewmodel.ToneSuccess: {lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4")), "✓"},
	viewmodel.ToneWarning: {lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D")), "⚠️"},
	viewmodel.ToneError:   {lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")), "✗"},
}

// formatTone prefixes message with the icon of tone and colors it.
func formatTone(tone viewmodel.Tone, message string) string {
	ts, ok := toneStyles[tone]
	if !ok {
		ts = toneStyles[viewmodel.ToneInfo]
	}
	return ts.style.Render(ts.icon + " " + message)
}

func formatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// renderBox renders content under title in a rounded box.
func renderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), content))
}
