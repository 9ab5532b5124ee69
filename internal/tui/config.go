package tui

import (
	"context"

	"github.com/Veraticus/potax/internal/export"
	"github.com/Veraticus/potax/internal/flow"
	"github.com/Veraticus/potax/internal/tui/themes"
)

// Submitter runs one classification request. *flow.Flow satisfies it.
type Submitter interface {
	Submit(ctx context.Context, req flow.Request) flow.Outcome
}

// Config holds TUI configuration.
type Config struct {
	Submitter  Submitter
	Theme      themes.Theme
	Initial    flow.Request
	ExportPath string
	Width      int
	Height     int
	AltScreen  bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:      themes.Default,
		ExportPath: export.DefaultFilename,
		Width:      80,
		Height:     24,
		AltScreen:  true,
	}
}

// WithSubmitter sets the flow that classifies submissions.
func WithSubmitter(s Submitter) Option {
	return func(c *Config) {
		c.Submitter = s
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithExportPath sets where Ctrl+E writes the export document.
func WithExportPath(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.ExportPath = path
		}
	}
}

// WithInitialRequest prefills the form.
func WithInitialRequest(req flow.Request) Option {
	return func(c *Config) {
		c.Initial = req
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
