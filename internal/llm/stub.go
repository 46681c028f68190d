package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// StubProvider is an offline Provider returning deterministic answers.
// It backs tests and API-key-less runs.
type StubProvider struct {
	mu      sync.Mutex
	prompts []string
}

// NewStubProvider creates a stub provider.
func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

// GenerateText returns a canned answer derived from the prompt and
// records the prompt for test inspection.
func (p *StubProvider) GenerateText(_ context.Context, prompt string) (string, error) {
	p.mu.Lock()
	p.prompts = append(p.prompts, prompt)
	p.mu.Unlock()

	promptLower := strings.ToLower(prompt)
	switch {
	case strings.Contains(promptLower, "salary"):
		return "My salary expectations are negotiable and aligned with market rates for this role.", nil
	case strings.Contains(promptLower, "why"):
		return "I am excited about this role because it matches my experience and growth goals.", nil
	case strings.Contains(promptLower, "notice"):
		return "I can start within two weeks of accepting an offer.", nil
	default:
		return fmt.Sprintf("Thank you for the question. Based on my background: %s",
			firstLine(prompt)), nil
	}
}

// Name returns the provider identifier.
func (p *StubProvider) Name() string { return ProviderStub }

// Close is a no-op for the stub.
func (p *StubProvider) Close() error { return nil }

// Prompts returns a copy of every prompt seen so far.
func (p *StubProvider) Prompts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.prompts))
	copy(out, p.prompts)
	return out
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[:idx]
	}
	if len(s) > 120 {
		s = s[:120] + "..."
	}
	return s
}
