package llm

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Provider names accepted in LUDUS_LLM_PROVIDER.
const (
	Gemini     = "gemini"
	OpenAI     = "openai"
	Anthropic  = "anthropic"
	OpenRouter = "openrouter"
	Mock       = "mock"
)

// Backend is how to reach one vendor. BaseURL is optional.
type Backend struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Config selects a provider and says how to call it.
type Config struct {
	Provider string
	Backends map[string]Backend
	Retry    RetryConfig

	// Timeout bounds one Generate call, retries included. Zero means no
	// bound.
	Timeout time.Duration
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

type vendor struct {
	name   string
	keyEnv string // the vendor's own variable
	model  string
}

// vendors is also the discovery order.
var vendors = []vendor{
	{Gemini, "GEMINI_API_KEY", "gemini-1.5-flash"},
	{OpenAI, "OPENAI_API_KEY", "gpt-4o-mini"},
	{Anthropic, "ANTHROPIC_API_KEY", "claude-haiku"},
	{OpenRouter, "OPENROUTER_API_KEY", "google/gemini-flash-1.5"},
}

// DefaultConfig has every vendor's default model and no keys. A tutor
// question is answered once or not at all, so failed calls are not retried.
func DefaultConfig() Config {
	cfg := Config{
		Provider: Gemini,
		Backends: make(map[string]Backend, len(vendors)),
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
	for _, v := range vendors {
		cfg.Backends[v.name] = Backend{Model: v.model}
	}
	return cfg
}

// envPrefix turns "openrouter" into "LUDUS_OPENROUTER_".
func envPrefix(name string) string {
	return "LUDUS_" + strings.ToUpper(name) + "_"
}

// ConfigFromEnv reads LUDUS_LLM_PROVIDER, LUDUS_LLM_RETRIES,
// LUDUS_LLM_TIMEOUT and LUDUS_<VENDOR>_{API_KEY,MODEL,BASE_URL} on top of
// the defaults. Malformed numbers are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if p := os.Getenv("LUDUS_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	for _, v := range vendors {
		b, prefix := cfg.Backends[v.name], envPrefix(v.name)
		b.APIKey = os.Getenv(prefix + "API_KEY")
		if m := os.Getenv(prefix + "MODEL"); m != "" {
			b.Model = m
		}
		if u := os.Getenv(prefix + "BASE_URL"); u != "" {
			b.BaseURL = u
		}
		cfg.Backends[v.name] = b
	}
	if n, err := strconv.Atoi(os.Getenv("LUDUS_LLM_RETRIES")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	if d, err := time.ParseDuration(os.Getenv("LUDUS_LLM_TIMEOUT")); err == nil && d >= 0 {
		cfg.Timeout = d
	}
	return cfg
}

// DiscoverConfig looks for the vendors' own key variables (GEMINI_API_KEY
// and so on) and picks the first one set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, v := range vendors {
		if k := os.Getenv(v.keyEnv); k != "" {
			cfg.Provider = v.name
			cfg.setKey(v.name, k)
			return cfg, true
		}
	}
	return Config{}, false
}

func (c Config) setKey(name, key string) {
	b := c.Backends[name]
	b.APIKey = key
	c.Backends[name] = b
}

// keyed returns the first vendor, in discovery order, with an API key.
func (c Config) keyed() (string, bool) {
	for _, v := range vendors {
		if c.Backends[v.name].APIKey != "" {
			return v.name, true
		}
	}
	return "", false
}

func (c Config) Validate() error {
	if c.Provider == Mock {
		return nil
	}
	if !slices.ContainsFunc(vendors, func(v vendor) bool { return v.name == c.Provider }) {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Backends[c.Provider].APIKey == "" {
		return fmt.Errorf("%sAPI_KEY is required for the %s provider", envPrefix(c.Provider), c.Provider)
	}
	return nil
}
