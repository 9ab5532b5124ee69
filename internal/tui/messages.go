package tui

import "github.com/Veraticus/potax/internal/flow"

// outcomeMsg carries the result of a submission. seq identifies the
// submission so results that arrive after a reset are dropped.
type outcomeMsg struct {
	outcome flow.Outcome
	seq     int
}

// exportedMsg reports the result of writing the export document.
type exportedMsg struct {
	err  error
	path string
}
