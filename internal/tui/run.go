package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/potax/internal/flow"
)

// Run shows the interactive form until the user quits or ctx is canceled.
// It returns the outcome on screen when the form closed.
func Run(ctx context.Context, opts ...Option) (flow.Outcome, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Submitter == nil {
		return flow.Idle(), errors.New("tui: submitter is required")
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	program := tea.NewProgram(newModel(ctx, cfg), programOpts...)
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return flow.Idle(), nil
		}
		return flow.Idle(), fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := final.(Model); ok {
		return m.Outcome(), nil
	}
	return flow.Idle(), nil
}
