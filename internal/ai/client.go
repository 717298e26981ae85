// Package ai contains the model clients used to obtain completions for
// submitted prompts. Two providers are supported: a local Ollama-compatible
// server (development, beta) and the hosted OpenAI API (production).
//
// Both clients share the same contract:
//   - Generate performs exactly one completion attempt. No retries, no
//     fallback between providers; transient faults surface to the caller.
//   - Unreachable-backend and non-2xx outcomes wrap ErrUnavailable so callers
//     can distinguish "the model is down" from malformed input or output.
//   - CheckHealth is a cheap reachability probe with a short internal timeout,
//     used to fail fast before expensive generation calls.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/kila-labs/go-prompt-backend/internal/config"
)

// ErrUnavailable indicates the model backend could not be reached or refused
// the request. Callers match it with errors.Is.
var ErrUnavailable = errors.New("model backend unavailable")

// Client is the minimal surface the services need from a model provider.
type Client interface {
	// Generate sends one prompt and returns the raw completion text.
	// It makes a single attempt; errors wrap ErrUnavailable when the backend
	// is unreachable or returned a non-success status.
	Generate(ctx context.Context, prompt string) (string, error)

	// CheckHealth reports whether the backend currently answers at all.
	// It never returns an error: an unreachable backend is simply false.
	CheckHealth(ctx context.Context) bool

	// Name returns the provider identifier ("ollama" or "openai").
	Name() string
}

// New builds the model client selected by cfg.Provider.
func New(cfg config.AIConfig) (Client, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllamaClient(cfg), nil
	case "openai":
		return NewOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
