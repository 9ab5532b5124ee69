package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/potax/internal/flow"
	"github.com/Veraticus/potax/internal/viewmodel"
)

// RenderOptions controls RenderOutcome.
type RenderOptions struct {
	// Width wraps highlighted JSON; zero means 80 columns.
	Width int
	// ShowRaw appends the raw JSON view on success.
	ShowRaw bool
	// Color enables lipgloss styling and glamour highlighting.
	Color bool
}

// RenderOutcome renders o for a terminal. Without color the output is plain
// text suitable for pipes. The raw text of a parse error is always printed
// verbatim.
func RenderOutcome(o flow.Outcome, opts RenderOptions) string {
	view := viewmodel.FromOutcome(o)

	var b strings.Builder
	b.WriteString(statusLine(view, opts.Color))
	b.WriteString("\n")

	switch o.State {
	case flow.StateSuccess:
		b.WriteString("\n")
		b.WriteString(levelsBlock(view, opts.Color))
		b.WriteString("\n")
		if opts.ShowRaw {
			b.WriteString("\n")
			b.WriteString(jsonBlock(view.RawText, opts))
			b.WriteString("\n")
		}
	case flow.StateParseError:
		b.WriteString("\n")
		b.WriteString(view.RawText)
		b.WriteString("\n")
	case flow.StateUnavailable:
		if view.Detail != "" {
			b.WriteString(view.Detail)
			b.WriteString("\n")
		}
	}

	return b.String()
}

func statusLine(view viewmodel.OutcomeView, color bool) string {
	if !color {
		return view.Message
	}
	return formatTone(view.Tone, view.Message)
}

func levelsBlock(view viewmodel.OutcomeView, color bool) string {
	lines := make([]string, 0, len(view.Levels))
	for _, level := range view.Levels {
		if !color {
			lines = append(lines, fmt.Sprintf("%-16s %s", level.Label+":", level.Value))
			continue
		}
		value := level.Value
		if level.Missing {
			value = missingStyle.Render(value)
		}
		lines = append(lines, labelStyle.Render(level.Label)+value)
	}

	content := strings.Join(lines, "\n")
	if !color {
		return content
	}
	return renderBox(view.Title, content)
}

// jsonBlock renders indented JSON, highlighted through glamour when color is
// on. Rendering failures fall back to the plain text.
func jsonBlock(doc string, opts RenderOptions) string {
	if !opts.Color {
		return doc
	}

	width := opts.Width
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return doc
	}
	out, err := renderer.Render("```json\n" + doc + "\n```\n")
	if err != nil {
		return doc
	}
	return strings.TrimRight(out, "\n")
}

// RenderHeader renders the page title and intro text.
func RenderHeader(color bool) string {
	title, intro := viewmodel.Title, viewmodel.Intro
	if !color {
		return title + "\n" + intro + "\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		subtleStyle.Render(intro),
	) + "\n"
}
