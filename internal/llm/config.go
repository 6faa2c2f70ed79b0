package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures a model provider.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "mock".
	Provider string

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Retry     RetryConfig
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig also serves OpenAI-compatible endpoints through BaseURL.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// RetryConfig controls backoff between attempts.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the defaults. Narrative feedback sits on a short
// timeout, so retries are few and quick.
func DefaultConfig() Config {
	return Config{
		Provider:  "anthropic",
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     2 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv reads QUIZSENSE_* variables over the defaults. The second
// result is false when no provider was configured at all; standard
// ANTHROPIC_API_KEY, OPENAI_API_KEY and GEMINI_API_KEY variables are
// probed when QUIZSENSE_LLM_PROVIDER is unset.
func ConfigFromEnv() (Config, bool) {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Anthropic.APIKey, "QUIZSENSE_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "QUIZSENSE_ANTHROPIC_MODEL")
	setFromEnv(&cfg.OpenAI.APIKey, "QUIZSENSE_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "QUIZSENSE_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "QUIZSENSE_OPENAI_BASE_URL")
	setFromEnv(&cfg.Gemini.APIKey, "QUIZSENSE_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "QUIZSENSE_GEMINI_MODEL")

	if p := os.Getenv("QUIZSENSE_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
		return cfg, true
	}

	// Probe in priority order: explicit keys, then the vendors' own variables.
	switch {
	case cfg.Anthropic.APIKey != "":
		cfg.Provider = "anthropic"
	case cfg.OpenAI.APIKey != "":
		cfg.Provider = "openai"
	case cfg.Gemini.APIKey != "":
		cfg.Provider = "gemini"
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	default:
		return cfg, false
	}
	return cfg, true
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks that the selected provider has credentials.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("QUIZSENSE_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("QUIZSENSE_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("QUIZSENSE_GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
