package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/lexplanet/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
// eventRepo may be nil, in which case requests are only logged.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo)
	return WithRetry(logged, cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from LEXPLANET_* variables and,
// when those select no usable key, from the vendors' standard variables.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	return NewProviderWithOverrides(ctx, ConfigFromEnv(), eventRepo)
}

// NewProviderWithOverrides builds a provider from cfg, falling back to
// DiscoverConfig when cfg has no key for its provider.
func NewProviderWithOverrides(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		discovered.Retry = cfg.Retry
		discovered.Timeout = cfg.Timeout
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo)
}
