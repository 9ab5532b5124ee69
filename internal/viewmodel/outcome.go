// Package viewmodel defines the display data shared by the text, terminal
// and web views.
package viewmodel

import (
	"time"

	"github.com/Veraticus/potax/internal/flow"
)

// Tone is the visual weight of an outcome.
type Tone int

const (
	// ToneInfo is used before the first submission.
	ToneInfo Tone = iota
	// ToneSuccess is used for a decoded classification.
	ToneSuccess
	// ToneWarning is used for rejected input.
	ToneWarning
	// ToneError is used for malformed output and classifier failures.
	ToneError
)

// Level labels in display order.
var levelLabels = map[string]string{
	flow.KeyL1: "L1 · Domain",
	flow.KeyL2: "L2 · Category",
	flow.KeyL3: "L3 · Sub-group",
}

// LevelView is one labelled taxonomy level.
type LevelView struct {
	Key     string
	Label   string
	Value   string
	Missing bool
}

// OutcomeView is everything a view needs to render an outcome.
type OutcomeView struct {
	Title       string
	Message     string
	Detail      string
	RawText     string
	ExportJSON  string
	ID          string
	Description string
	Supplier    string
	Levels      []LevelView
	Elapsed     time.Duration
	State       flow.State
	Tone        Tone
	Exportable  bool
	ShowRaw     bool
}

// FromOutcome projects o for display.
func FromOutcome(o flow.Outcome) OutcomeView {
	view := OutcomeView{
		ID:          o.ID,
		State:       o.State,
		Message:     o.Message,
		Description: o.Request.Description,
		Supplier:    o.Request.Supplier,
		Elapsed:     o.Elapsed,
	}
	if view.Message == "" {
		view.Message = flow.Idle().Message
	}

	switch o.State {
	case flow.StateSuccess:
		view.Tone = ToneSuccess
		view.Title = "Classification"
		view.Levels = levelViews(o.Levels())
		view.RawText = o.RawView()
		view.ShowRaw = true
		if doc, err := o.ExportJSON(); err == nil {
			view.ExportJSON = string(doc)
			view.Exportable = true
		}
	case flow.StateInvalidInput:
		view.Tone = ToneWarning
		view.Title = "Missing description"
	case flow.StateParseError:
		view.Tone = ToneError
		view.Title = "Unexpected model output"
		view.RawText = o.Raw
		view.ShowRaw = true
	case flow.StateUnavailable:
		view.Tone = ToneError
		view.Title = "Classifier unavailable"
		if o.Err != nil {
			view.Detail = o.Err.Error()
		}
	default:
		view.Tone = ToneInfo
		view.Title = "Ready"
	}

	return view
}

func levelViews(levels []flow.Level) []LevelView {
	views := make([]LevelView, 0, len(levels))
	for _, level := range levels {
		label, ok := levelLabels[level.Key]
		if !ok {
			label = level.Key
		}
		views = append(views, LevelView{
			Key:     level.Key,
			Label:   label,
			Value:   level.Value,
			Missing: !level.Present,
		})
	}
	return views
}

// HasResult reports whether the view carries taxonomy levels.
func (v OutcomeView) HasResult() bool {
	return len(v.Levels) > 0
}

// Page copy shared by every view.
const (
	PageTitle   = "PO Category Classifier"
	Title       = "📦 PO L1–L2–L3 Classifier"
	Intro       = "Enter the Purchase Order details below to identify the correct tax and spend categories."
	SubmitLabel = "Classify PO"
	SpinnerText = "Analyzing taxonomy..."
	Footer      = "AI-powered Procurement Categorization Tool v1.1"
)
