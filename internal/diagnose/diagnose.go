// Package diagnose sends captured REPL scrollback to an LLM and returns
// a plain-language explanation of the most recent error.
//
// This is purely advisory tooling layered on top of the read path: the
// session is never mutated, and the scrollback itself is still treated
// as opaque text by everything outside this package.
package diagnose

import "context"

// TokenUsage reports LLM token consumption for one explanation.
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
}

// Explanation is the model's answer.
type Explanation struct {
	Text  string
	Usage TokenUsage
}

// Explainer sends a REPL transcript to an LLM and returns an explanation.
type Explainer interface {
	// Explain sends the transcript and returns the explanation.
	Explain(ctx context.Context, transcript string) (*Explanation, error)

	// Provider returns the provider name (e.g., "anthropic", "openai").
	Provider() string

	// Model returns the model name used.
	Model() string
}
