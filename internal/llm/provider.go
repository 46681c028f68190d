// Package llm abstracts the text-generation provider used for answering
// application questions.
package llm

import (
	"context"
	"fmt"
)

// Provider names accepted by New.
const (
	ProviderGemini = "gemini"
	ProviderStub   = "stub"
)

// Provider is an abstraction over text-generation backends.
type Provider interface {
	// GenerateText generates a completion for the prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// Name returns the provider identifier.
	Name() string
	// Close releases any resources held by the provider.
	Close() error
}

// Config selects and configures a provider.
type Config struct {
	Provider string
	APIKey   string
	Model    string
}

// New creates a provider from configuration. An unset or unknown
// provider, or a Gemini provider without an API key, falls back to the
// stub so the pipeline stays usable offline.
func New(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.APIKey == "" {
			return NewStubProvider(), nil
		}
		return NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	case ProviderStub, "":
		return NewStubProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
