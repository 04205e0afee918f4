package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/focusflow/internal/store"
)

// NewProvider builds the configured vendor and wraps it so each attempt
// is recorded: retry(record(vendor)). A nil events repo skips recording.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case ProviderGemini:
		p, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenAI:
		p, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		p, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderAnthropic:
		p, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderMock:
		p = NewOfflineProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("%s provider: %w", cfg.Provider, err)
	}

	if events != nil {
		p = WithLogging(p, cfg.Provider, events, logger)
	}
	return WithRetry(p, cfg.Retry), nil
}
