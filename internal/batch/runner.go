package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/potax/internal/flow"
	"github.com/Veraticus/potax/internal/viewmodel"
)

// Submitter runs one classification request. *flow.Flow satisfies it.
type Submitter interface {
	Submit(ctx context.Context, req flow.Request) flow.Outcome
}

// Record is one JSON line of batch output.
type Record struct {
	ID          string     `json:"id,omitempty"`
	Description string     `json:"description"`
	Supplier    string     `json:"supplier,omitempty"`
	L1          string     `json:"L1,omitempty"`
	L2          string     `json:"L2,omitempty"`
	L3          string     `json:"L3,omitempty"`
	Message     string     `json:"message"`
	Raw         *string    `json:"raw,omitempty"`
	Error       string     `json:"error,omitempty"`
	State       flow.State `json:"state"`
	Row         int        `json:"row"`
}

// NewRecord converts the outcome of row into an output record.
func NewRecord(row Row, o flow.Outcome) Record {
	rec := Record{
		Row:         row.Line,
		ID:          o.ID,
		State:       o.State,
		Description: row.Request.Description,
		Supplier:    row.Request.Supplier,
		Message:     o.Message,
	}
	if raw, ok := o.RawOutput(); ok {
		rec.Raw = &raw
	}
	if o.Err != nil {
		rec.Error = o.Err.Error()
	}
	if o.State == flow.StateSuccess {
		rec.L1 = o.Result.Level(flow.KeyL1)
		rec.L2 = o.Result.Level(flow.KeyL2)
		rec.L3 = o.Result.Level(flow.KeyL3)
	}
	return rec
}

// Summary counts the outcomes of a batch run.
type Summary struct {
	Counts  map[flow.State]int
	Total   int
	Elapsed time.Duration
}

// Failed returns the number of rows that did not end in success.
func (s Summary) Failed() int {
	return s.Total - s.Counts[flow.StateSuccess]
}

// String renders the counts in state order.
func (s Summary) String() string {
	parts := []string{fmt.Sprintf("%d rows", s.Total)}
	for _, state := range []flow.State{flow.StateSuccess, flow.StateInvalidInput, flow.StateParseError, flow.StateUnavailable} {
		if n := s.Counts[state]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", state, n))
		}
	}
	return strings.Join(parts, ", ")
}

// labelWidth bounds the description shown beside the progress bar.
const labelWidth = 40

// Runner submits rows one at a time.
type Runner struct {
	submitter Submitter
	progress  io.Writer
	logger    *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithProgress draws a progress bar on w.
func WithProgress(w io.Writer) Option {
	return func(r *Runner) {
		r.progress = w
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a Runner around submitter.
func NewRunner(submitter Submitter, opts ...Option) *Runner {
	r := &Runner{
		submitter: submitter,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run classifies rows in order and writes one JSON line per row to out.
// Classification failures are recorded, not returned; Run only fails when
// ctx is canceled or out cannot be written.
func (r *Runner) Run(ctx context.Context, rows []Row, out io.Writer) (Summary, error) {
	start := time.Now()
	summary := Summary{Counts: make(map[flow.State]int)}
	bar := r.newProgressBar(len(rows))

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			summary.Elapsed = time.Since(start)
			return summary, fmt.Errorf("batch interrupted after %d rows: %w", summary.Total, err)
		}

		label := viewmodel.OneLine(row.Request.Description, labelWidth)
		bar.Describe(fmt.Sprintf("[cyan]row %d[reset] %s", row.Line, label))

		outcome := r.submitter.Submit(ctx, row.Request)
		summary.Total++
		summary.Counts[outcome.State]++
		r.logger.Debug("row classified",
			"row", row.Line,
			"description", label,
			"state", outcome.State)

		if err := enc.Encode(NewRecord(row, outcome)); err != nil {
			summary.Elapsed = time.Since(start)
			return summary, fmt.Errorf("failed to write record for row %d: %w", row.Line, err)
		}

		if err := bar.Add(1); err != nil {
			r.logger.Warn("Failed to update progress bar", "error", err)
		}
	}

	summary.Elapsed = time.Since(start)
	r.logger.Info("batch finished",
		"rows", summary.Total,
		"failed", summary.Failed(),
		"elapsed", summary.Elapsed)

	return summary, nil
}

func (r *Runner) newProgressBar(total int) *progressbar.ProgressBar {
	w := r.progress
	if w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Classifying purchase orders...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}
