// Package flow implements the purchase-order classification request flow:
// input validation, one call to the external classifier, decoding of its
// output and the display state the submission ends in.
package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a single classifier call.
const DefaultTimeout = 60 * time.Second

// User-facing messages for each state.
const (
	MessageIdle         = "Results will appear here once you click 'Classify'."
	MessageInvalidInput = "Please enter a PO description."
	MessageSuccess      = "Analysis Complete!"
	MessageParseError   = "Model returned an unexpected format."
	MessageUnavailable  = "Classifier is unavailable."
)

var (
	// ErrEmptyDescription is reported when the description is blank.
	ErrEmptyDescription = errors.New("description is required")
	// ErrNotExportable is returned when exporting an outcome that is not a success.
	ErrNotExportable = errors.New("only successful classifications can be exported")
)

// Classifier maps a PO description and optional supplier to raw, usually
// JSON-encoded, text.
type Classifier interface {
	Classify(ctx context.Context, description, supplier string) (string, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, description, supplier string) (string, error)

// Classify calls f.
func (f ClassifierFunc) Classify(ctx context.Context, description, supplier string) (string, error) {
	return f(ctx, description, supplier)
}

// Request is one user submission.
type Request struct {
	Description string `json:"description"`
	Supplier    string `json:"supplier,omitempty"`
}

// Validate checks that the description is not blank.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// Outcome is what a submission produced. Views hold the latest Outcome as
// their session state and replace it on every submission.
type Outcome struct {
	Err     error
	Result  Result
	Request Request
	ID      string
	Raw     string
	Message string
	Elapsed time.Duration
	State   State
}

// Idle returns the outcome shown before the first submission.
func Idle() Outcome {
	return Outcome{State: StateIdle, Message: MessageIdle}
}

// Levels returns the taxonomy levels of a successful outcome.
func (o Outcome) Levels() []Level {
	if o.State != StateSuccess {
		return nil
	}
	return o.Result.Levels()
}

// ExportJSON returns the download document for a successful outcome.
func (o Outcome) ExportJSON() ([]byte, error) {
	if o.State != StateSuccess {
		return nil, ErrNotExportable
	}
	return o.Result.Export()
}

// RawOutput returns the classifier's reply and whether it produced one. Only
// Success and ParseError outcomes carry a reply, which may be empty.
func (o Outcome) RawOutput() (string, bool) {
	switch o.State {
	case StateSuccess, StateParseError:
		return o.Raw, true
	default:
		return "", false
	}
}

// RawView returns the text for the raw inspection view: the indented
// result on success, the classifier output verbatim otherwise.
func (o Outcome) RawView() string {
	if o.State == StateSuccess {
		if doc, err := o.Result.Export(); err == nil {
			return string(doc)
		}
	}
	return o.Raw
}

// Flow runs classification requests against a Classifier.
type Flow struct {
	classifier Classifier
	logger     *slog.Logger
	newID      func() string
	timeout    time.Duration
}

// Option configures a Flow.
type Option func(*Flow)

// WithTimeout sets the classifier call timeout. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(f *Flow) {
		f.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Flow) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates a Flow around classifier.
func New(classifier Classifier, opts ...Option) *Flow {
	f := &Flow{
		classifier: classifier,
		logger:     slog.Default(),
		timeout:    DefaultTimeout,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Submit runs one classification cycle. It always returns an outcome in a
// terminal state and never returns an error; failures are part of the outcome.
func (f *Flow) Submit(ctx context.Context, req Request) Outcome {
	outcome := Outcome{
		ID:      f.newID(),
		Request: req,
	}
	logger := f.logger.With("submission_id", outcome.ID)

	if err := req.Validate(); err != nil {
		outcome.State = StateInvalidInput
		outcome.Message = MessageInvalidInput
		outcome.Err = err
		logger.Debug("rejected empty description")
		return outcome
	}

	start := time.Now()
	raw, err := f.call(ctx, req)
	outcome.Elapsed = time.Since(start)
	outcome.Raw = raw

	if err != nil {
		outcome.State = StateUnavailable
		outcome.Message = MessageUnavailable
		outcome.Err = err
		logger.Warn("classifier call failed",
			"elapsed", outcome.Elapsed,
			"error", err)
		return outcome
	}

	result, err := Decode(raw)
	if err != nil {
		outcome.State = StateParseError
		outcome.Message = MessageParseError
		outcome.Err = err
		logger.Warn("classifier returned malformed output",
			"elapsed", outcome.Elapsed,
			"raw_length", len(raw),
			"error", err)
		return outcome
	}

	outcome.State = StateSuccess
	outcome.Message = MessageSuccess
	outcome.Result = result
	logger.Info("purchase order classified",
		"elapsed", outcome.Elapsed,
		"l1", result.Level(KeyL1),
		"l2", result.Level(KeyL2),
		"l3", result.Level(KeyL3))

	return outcome
}

type callResult struct {
	err error
	raw string
}

// call invokes the classifier once, bounded by the flow timeout. A classifier
// that ignores its context is abandoned when the deadline passes.
func (f *Flow) call(ctx context.Context, req Request) (string, error) {
	if f.classifier == nil {
		return "", errors.New("no classifier configured")
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	resultCh := make(chan callResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				resultCh <- callResult{err: fmt.Errorf("classifier panicked: %v", r)}
			}
		}()
		raw, err := f.classifier.Classify(ctx, req.Description, req.Supplier)
		resultCh <- callResult{raw: raw, err: err}
	}()

	select {
	case res := <-resultCh:
		return res.raw, res.err
	case <-ctx.Done():
		return "", fmt.Errorf("classifier call abandoned: %w", ctx.Err())
	}
}
