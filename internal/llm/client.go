package llm

import (
	"context"
	"time"
)

// Client defines the interface for LLM providers. Complete returns the
// model's reply text without interpreting it.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Config holds configuration for the LLM classifier.
type Config struct {
	Taxonomy       *Taxonomy
	Provider       string
	APIKey         string
	BaseURL        string
	Model          string
	ClaudeCodePath string
	StaticResponse string
	MaxRetries     int
	RetryDelay     time.Duration
	RateLimit      int
	Temperature    float64
	MaxTokens      int
}

func (c Config) maxTokens() int {
	if c.MaxTokens <= 0 {
		return 200
	}
	return c.MaxTokens
}
