package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/potax/internal/flow"
)

// Prompter collects a classification request line by line from a terminal.
type Prompter struct {
	writer io.Writer
	reader *NonBlockingReader
	color  bool
}

// NewPrompter creates a prompter with the given reader and writer.
func NewPrompter(reader io.Reader, writer io.Writer, color bool) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
		color:  color,
	}
}

// PromptRequest asks for a description and a supplier. Input is returned as
// entered; validation is left to the flow.
func (p *Prompter) PromptRequest(ctx context.Context) (flow.Request, error) {
	description, err := p.ask(ctx, "PO description")
	if err != nil {
		return flow.Request{}, err
	}

	supplier, err := p.ask(ctx, "Supplier (optional)")
	if err != nil && !errors.Is(err, io.EOF) {
		return flow.Request{}, err
	}

	return flow.Request{Description: description, Supplier: supplier}, nil
}

func (p *Prompter) ask(ctx context.Context, prompt string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	label := prompt + ": "
	if p.color {
		label = formatPrompt(prompt)
	}
	if _, err := fmt.Fprint(p.writer, label); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	return p.reader.ReadLine(ctx)
}
