package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Veraticus/potax/internal/common"
)

// claudeCodeClient implements the Client interface using the Claude Code CLI.
type claudeCodeClient struct {
	model   string
	cliPath string
}

// newClaudeCodeClient creates a new Claude Code CLI client.
func newClaudeCodeClient(cfg Config) (Client, error) {
	cliPath := cfg.ClaudeCodePath
	if cliPath == "" {
		cliPath = "claude"
	}

	resolved, err := exec.LookPath(cliPath)
	if err != nil {
		return nil, fmt.Errorf("claude CLI not found at %s: ensure @anthropic-ai/claude-code is installed", cliPath)
	}

	model := cfg.Model
	if model == "" {
		model = "sonnet"
	}

	return &claudeCodeClient{
		model:   model,
		cliPath: resolved,
	}, nil
}

// Complete runs a single-turn print-mode session and returns its result text.
func (c *claudeCodeClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	args := []string{
		"-p", system + "\n\n" + prompt,
		"--output-format", "json",
		"--model", c.model,
		"--max-turns", "1",
	}

	cmd := exec.CommandContext(ctx, c.cliPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if stderr.Len() > 0 {
			return "", fmt.Errorf("claude code error: %s", strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("failed to execute claude: %w", err)
	}

	var response claudeCodeResponse
	if err := json.Unmarshal(stdout.Bytes(), &response); err != nil {
		// Older CLI versions print the bare result.
		return stdout.String(), nil
	}

	if response.IsError {
		return "", fmt.Errorf("claude code reported an error: %s", response.Result)
	}

	if strings.TrimSpace(response.Result) == "" {
		return "", fmt.Errorf("empty result from claude code: %w", common.ErrEmptyResponse)
	}

	return response.Result, nil
}

// claudeCodeResponse represents the JSON envelope printed by the Claude Code CLI.
type claudeCodeResponse struct {
	Result    string  `json:"result"`
	Type      string  `json:"type"`
	SessionID string  `json:"session_id"`
	IsError   bool    `json:"is_error"`
	TotalCost float64 `json:"total_cost_usd"`
}
