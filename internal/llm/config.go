package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// envPrefix namespaces every variable read by ConfigFromEnv.
const envPrefix = "LEXPLANET_"

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single briefing request including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku-4-5"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-2.0-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-001"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: defaultAnthropicModel},
		OpenAI:     OpenAIConfig{Model: defaultOpenAIModel},
		Gemini:     GeminiConfig{Model: defaultGeminiModel},
		OpenRouter: OpenRouterConfig{Model: defaultOpenRouterModel},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from LEXPLANET_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "LLM_PROVIDER")

	setFromEnv(&cfg.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "ANTHROPIC_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")

	setFromEnv(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "GEMINI_MODEL")

	setFromEnv(&cfg.OpenRouter.APIKey, "OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "OPENROUTER_MODEL")
	setFromEnv(&cfg.OpenRouter.BaseURL, "OPENROUTER_BASE_URL")

	return cfg
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(envPrefix + name); v != "" {
		*dst = v
	}
}

// DiscoverConfig checks the vendors' standard API key variables in
// priority order (Gemini, OpenAI, Anthropic, OpenRouter) and returns a
// Config for the first key found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("an API key is required for the %s provider (set %s%s_API_KEY or secrets.yaml)",
			c.Provider, envPrefix, envName(c.Provider))
	}
	return nil
}

func envName(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI"
	case ProviderGemini:
		return "GEMINI"
	case ProviderOpenRouter:
		return "OPENROUTER"
	default:
		return "ANTHROPIC"
	}
}

// HasKey reports whether the configured provider can be constructed.
func (c Config) HasKey() bool {
	return c.Validate() == nil
}
