// Package tui implements the interactive purchase-order form.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/potax/internal/flow"
	"github.com/Veraticus/potax/internal/tui/themes"
)

// Field identifies the focused form input.
type Field int

const (
	// FieldDescription is the PO description textarea.
	FieldDescription Field = iota
	// FieldSupplier is the supplier input.
	FieldSupplier
)

const fieldCount = 2

// Tab selects what the result region shows.
type Tab int

const (
	// TabLevels shows the labelled L1/L2/L3 values.
	TabLevels Tab = iota
	// TabRaw shows the indented JSON document.
	TabRaw
)

// Model holds the form state. The latest outcome is the session state and
// is replaced on every submission.
type Model struct {
	ctx         context.Context
	cancel      context.CancelFunc
	submitter   Submitter
	theme       themes.Theme
	keymap      KeyMap
	help        help.Model
	description textarea.Model
	supplier    textinput.Model
	spinner     spinner.Model
	outcome     flow.Outcome
	status      string
	statusErr   bool
	exportPath  string
	seq         int
	width       int
	height      int
	focus       Field
	tab         Tab
	busy        bool
	quitting    bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	description := textarea.New()
	description.Placeholder = "e.g. Annual subscription for cloud hosting services"
	description.ShowLineNumbers = false
	description.CharLimit = 4000
	description.SetHeight(5)
	description.SetValue(cfg.Initial.Description)
	description.Focus()

	supplier := textinput.New()
	supplier.Placeholder = "e.g. Amazon Web Services"
	supplier.Prompt = ""
	supplier.CharLimit = 200
	supplier.SetValue(cfg.Initial.Supplier)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = cfg.Theme.Title

	m := Model{
		ctx:         ctx,
		submitter:   cfg.Submitter,
		theme:       cfg.Theme,
		keymap:      DefaultKeyMap(),
		help:        help.New(),
		description: description,
		supplier:    supplier,
		spinner:     sp,
		outcome:     flow.Idle(),
		exportPath:  cfg.ExportPath,
		width:       cfg.Width,
		height:      cfg.Height,
	}
	m.resize()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case outcomeMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.stopSubmission()
		m.busy = false
		m.outcome = msg.outcome
		m.tab = TabLevels
		m.status = ""
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.setStatus("Export failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("Saved "+msg.path, false)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// Outcome returns the outcome currently on screen.
func (m Model) Outcome() flow.Outcome {
	return m.outcome
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.stopSubmission()
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Submit):
		return m.submit(), true

	case key.Matches(msg, m.keymap.NextField):
		return m.setFocus((m.focus + 1) % fieldCount), true

	case key.Matches(msg, m.keymap.PrevField):
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount), true

	case key.Matches(msg, m.keymap.ToggleRaw):
		if m.outcome.State == flow.StateSuccess {
			if m.tab == TabLevels {
				m.tab = TabRaw
			} else {
				m.tab = TabLevels
			}
		}
		return nil, true

	case key.Matches(msg, m.keymap.Export):
		if m.outcome.State != flow.StateSuccess {
			m.setStatus("Nothing to export yet.", true)
			return nil, true
		}
		return exportOutcome(m.exportPath, m.outcome), true

	case key.Matches(msg, m.keymap.Reset):
		m.reset()
		return m.setFocus(FieldDescription), true

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true

	case msg.Type == tea.KeyEnter && m.focus == FieldSupplier:
		return m.submit(), true
	}

	return nil, false
}

// submit starts a classification unless one is already running.
func (m *Model) submit() tea.Cmd {
	if m.busy || m.submitter == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.seq++
	m.busy = true
	m.status = ""
	req := flow.Request{
		Description: m.description.Value(),
		Supplier:    m.supplier.Value(),
	}
	return tea.Batch(m.spinner.Tick, submit(ctx, m.submitter, req, m.seq))
}

// stopSubmission cancels the running submission, if any.
func (m *Model) stopSubmission() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// reset returns the session to Idle and cancels any in-flight submission.
func (m *Model) reset() {
	m.stopSubmission()
	m.seq++
	m.busy = false
	m.outcome = flow.Idle()
	m.tab = TabLevels
	m.status = ""
	m.description.Reset()
	m.supplier.Reset()
}

func (m *Model) setFocus(field Field) tea.Cmd {
	m.focus = field
	if field == FieldSupplier {
		m.description.Blur()
		return m.supplier.Focus()
	}
	m.supplier.Blur()
	return m.description.Focus()
}

func (m *Model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == FieldSupplier {
		m.supplier, cmd = m.supplier.Update(msg)
	} else {
		m.description, cmd = m.description.Update(msg)
	}
	return m, cmd
}

// resize adjusts component sizes when the terminal resizes.
func (m *Model) resize() {
	formWidth := m.formWidth()
	m.description.SetWidth(formWidth - 4)
	m.supplier.Width = formWidth - 4
	m.help.Width = m.width
}
