package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/potax/internal/export"
	"github.com/Veraticus/potax/internal/flow"
)

// submit runs one flow submission off the UI goroutine.
func submit(ctx context.Context, s Submitter, req flow.Request, seq int) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg{outcome: s.Submit(ctx, req), seq: seq}
	}
}

// exportOutcome writes the export document of o to path.
func exportOutcome(path string, o flow.Outcome) tea.Cmd {
	return func() tea.Msg {
		written, err := export.WriteFile(path, o)
		return exportedMsg{path: written, err: err}
	}
}
