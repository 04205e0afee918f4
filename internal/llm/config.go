package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/abhisek/focusflow/internal/config"
)

// Provider names accepted by NewProvider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible APIs
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // default https://openrouter.ai/api/v1
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig targets Gemini 2.5 Pro with three attempts.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-2.5-pro"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-pro"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// FromSettings builds a Config from the [llm] section and the credential
// the user stored. The credential goes to whichever provider is selected.
func FromSettings(s config.LLMConfig, apiKey string) Config {
	cfg := DefaultConfig()
	if s.Provider != "" {
		cfg.Provider = s.Provider
	}
	if s.Timeout.Duration > 0 {
		cfg.Timeout = s.Timeout.Duration
	}

	switch cfg.Provider {
	case ProviderGemini:
		cfg.Gemini.APIKey = apiKey
		if s.Model != "" {
			cfg.Gemini.Model = s.Model
		}
	case ProviderOpenAI:
		cfg.OpenAI.APIKey = apiKey
		cfg.OpenAI.BaseURL = s.BaseURL
		if s.Model != "" {
			cfg.OpenAI.Model = s.Model
		}
	case ProviderOpenRouter:
		cfg.OpenRouter.APIKey = apiKey
		cfg.OpenRouter.BaseURL = s.BaseURL
		if s.Model != "" {
			cfg.OpenRouter.Model = s.Model
		}
	case ProviderAnthropic:
		cfg.Anthropic.APIKey = apiKey
		if s.Model != "" {
			cfg.Anthropic.Model = s.Model
		}
	}

	if u := os.Getenv("FOCUSFLOW_LLM_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
		cfg.OpenRouter.BaseURL = u
	}
	return cfg
}

// APIKey returns the credential configured for the selected provider.
func (c Config) APIKey() string {
	switch c.Provider {
	case ProviderGemini:
		return c.Gemini.APIKey
	case ProviderOpenAI:
		return c.OpenAI.APIKey
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey
	case ProviderAnthropic:
		return c.Anthropic.APIKey
	}
	return ""
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderOpenRouter, ProviderAnthropic:
		if c.APIKey() == "" {
			return fmt.Errorf("an API key is required for the %s provider", c.Provider)
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
