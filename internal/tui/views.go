package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/potax/internal/flow"
	"github.com/Veraticus/potax/internal/viewmodel"
)

const (
	// wideLayoutWidth is the terminal width from which form and result sit
	// side by side.
	wideLayoutWidth = 110
	minFormWidth    = 30
)

func (m Model) formWidth() int {
	if m.width >= wideLayoutWidth {
		return m.width / 2
	}
	if m.width < minFormWidth {
		return minFormWidth
	}
	return m.width
}

func (m Model) render() string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(viewmodel.Title),
		m.theme.Subtitle.Render(viewmodel.Intro),
	)

	form := m.renderForm()
	result := m.renderResult()

	var body string
	if m.width >= wideLayoutWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, form, " ", result)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, form, result)
	}

	sections := []string{header, "", body}
	if m.status != "" {
		style := m.theme.StatusSuccess
		if m.statusErr {
			style = m.theme.StatusError
		}
		sections = append(sections, style.Render(m.status))
	}
	sections = append(sections,
		m.help.View(m.keymap),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(viewmodel.Footer),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderForm() string {
	descLabel := m.theme.Label
	supplierLabel := m.theme.Label
	if m.focus == FieldDescription {
		descLabel = m.theme.FocusedLabel
	} else {
		supplierLabel = m.theme.FocusedLabel
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		descLabel.Render("PO Description"),
		m.description.View(),
		"",
		supplierLabel.Render("Supplier (optional)"),
		m.supplier.View(),
	)

	return m.theme.FocusedBox.Width(m.formWidth() - 2).Render(content)
}

func (m Model) renderResult() string {
	width := m.formWidth() - 2
	if m.busy {
		return m.theme.RoundedBox.Width(width).Render(m.spinner.View() + " " + viewmodel.SpinnerText)
	}

	view := viewmodel.FromOutcome(m.outcome)
	lines := []string{m.theme.Tone(view.Tone).Render(view.Message)}

	switch view.State {
	case flow.StateSuccess:
		lines = append(lines, "", m.renderTabs())
		if m.tab == TabRaw {
			lines = append(lines, m.theme.Code.Render(view.RawText))
		} else {
			lines = append(lines, m.renderLevels(view.Levels))
		}
		if elapsed := viewmodel.FormatElapsed(view.Elapsed); elapsed != "" {
			lines = append(lines, "", lipgloss.NewStyle().Foreground(m.theme.Muted).Render("took "+elapsed))
		}
	case flow.StateParseError:
		lines = append(lines, "", m.theme.Label.Render("Raw output"), view.RawText)
	case flow.StateUnavailable:
		if view.Detail != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(view.Detail))
		}
	}

	// Raw model output must not be rewrapped, so the box only gets a width
	// for states without it.
	box := m.theme.RoundedBox
	if view.State != flow.StateParseError {
		box = box.Width(width)
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (m Model) renderTabs() string {
	levels, raw := m.theme.InactiveTab, m.theme.InactiveTab
	if m.tab == TabRaw {
		raw = m.theme.ActiveTab
	} else {
		levels = m.theme.ActiveTab
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, levels.Render("Levels"), " ", raw.Render("Raw JSON"))
}

func (m Model) renderLevels(levels []viewmodel.LevelView) string {
	rows := make([]string, 0, len(levels))
	label := m.theme.Label.Width(16)
	for _, level := range levels {
		value := m.theme.Bold.Render(level.Value)
		if level.Missing {
			value = m.theme.Missing.Render(level.Value)
		}
		rows = append(rows, label.Render(level.Label)+value)
	}
	return strings.Join(rows, "\n")
}
