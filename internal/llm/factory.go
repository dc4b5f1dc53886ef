package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/xamuil2/digitalludus/internal/store"
)

// ErrNotConfigured means no provider was selected and no API key was found.
var ErrNotConfigured = errors.New("no LLM provider configured")

// NewProvider builds the configured provider. Calls pass through timeout,
// then retry, then the event log (skipped when events is nil) before they
// reach the vendor.
func NewProvider(ctx context.Context, cfg Config, events store.LLMEventWriter) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Provider == Mock {
		return NewMockProvider(), nil
	}
	base, err := newBackend(ctx, cfg.Provider, cfg.Backends[cfg.Provider])
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if events != nil {
		p = WithLogging(p, cfg.Provider, events)
	}
	p = WithRetry(p, cfg.Retry)
	if cfg.Timeout > 0 {
		p = WithTimeout(p, cfg.Timeout)
	}
	return p, nil
}

func newBackend(ctx context.Context, name string, b Backend) (Provider, error) {
	if b.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", name)
	}
	switch name {
	case Anthropic:
		return newAnthropic(b), nil
	case OpenAI:
		return newOpenAI(b, resolveModel(OpenAI, b.Model)), nil
	case OpenRouter:
		return newOpenRouter(b), nil
	case Gemini:
		return newGemini(ctx, b)
	}
	return nil, fmt.Errorf("unknown LLM provider: %q", name)
}

// ResolveConfig decides which provider the environment asks for. An
// explicit LUDUS_LLM_PROVIDER wins; then the first LUDUS_*_API_KEY; then
// the vendors' own key variables.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	if os.Getenv("LUDUS_LLM_PROVIDER") != "" {
		return cfg, nil
	}
	if name, ok := cfg.keyed(); ok {
		cfg.Provider = name
		return cfg, nil
	}
	found, ok := DiscoverConfig()
	if !ok {
		return Config{}, ErrNotConfigured
	}
	found.Retry, found.Timeout = cfg.Retry, cfg.Timeout
	return found, nil
}

// NewProviderFromEnv is ResolveConfig followed by NewProvider.
func NewProviderFromEnv(ctx context.Context, events store.LLMEventWriter) (Provider, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, events)
}
