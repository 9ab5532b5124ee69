package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/potax/internal/common"
	"golang.org/x/time/rate"
)

// Classifier implements flow.Classifier on top of an LLM Client. It returns
// the model's reply as text and leaves decoding to the caller.
type Classifier struct {
	client      Client
	taxonomy    *Taxonomy
	logger      *slog.Logger
	rateLimiter *rate.Limiter
	retryOpts   common.RetryOptions
}

// NewClassifier creates a new LLM-based classifier.
func NewClassifier(cfg Config, logger *slog.Logger) (*Classifier, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return newClassifierWithClient(client, cfg, logger), nil
}

func newClassifierWithClient(client Client, cfg Config, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}

	// The first call is not a retry.
	retryOpts := common.RetryOptions{
		Logger:       logger,
		MaxAttempts:  max(cfg.MaxRetries, 0) + 1,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Classifier{
		client:      client,
		taxonomy:    cfg.Taxonomy,
		logger:      logger,
		retryOpts:   retryOpts,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}
}

// Classify asks the model for the L1/L2/L3 classification of one purchase
// order. Transport failures are retried; the reply text is never inspected
// beyond removing a surrounding Markdown code fence.
func (c *Classifier) Classify(ctx context.Context, description, supplier string) (string, error) {
	prompt := buildPrompt(description, supplier, c.taxonomy)

	var reply string
	attempts := 0
	err := common.WithRetry(ctx, func() error {
		attempts++
		if err := waitForSlot(ctx, c.rateLimiter); err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}

		out, err := c.client.Complete(ctx, systemPrompt, prompt)
		if err != nil {
			return err
		}
		reply = out
		return nil
	}, c.retryOpts)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrClassifierUnavailable, err)
	}

	c.logger.Debug("classifier replied",
		"attempts", attempts,
		"reply_length", len(reply))

	return cleanMarkdownWrapper(reply), nil
}
