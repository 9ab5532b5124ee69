// Package llm provides the language-model classifier collaborators for
// purchase-order taxonomy classification. It supports OpenAI, Anthropic,
// Gemini and the Claude Code CLI, plus a static provider for offline use, with
// rate limiting and retry of transport failures.
package llm
