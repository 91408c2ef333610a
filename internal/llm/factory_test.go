package llm

import (
	"context"
	"math"
	"testing"
)

func clearKeys(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"LEXPLANET_LLM_PROVIDER", "LEXPLANET_ANTHROPIC_API_KEY", "LEXPLANET_OPENAI_API_KEY",
		"LEXPLANET_GEMINI_API_KEY", "LEXPLANET_OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestNewProvider_WrapsMiddleware(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "sk-or-test"

	p, err := NewProvider(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	retry, ok := p.(*RetryProvider)
	if !ok {
		t.Fatalf("expected *RetryProvider, got %T", p)
	}
	if _, ok := retry.inner.(*LoggingProvider); !ok {
		t.Fatalf("expected logging inside retry, got %T", retry.inner)
	}
	if p.ModelID() != "google/gemini-2.0-flash-001" {
		t.Errorf("ModelID() = %q", p.ModelID())
	}
}

func TestNewProviderFromEnv_NoKeys(t *testing.T) {
	clearKeys(t)
	if _, err := NewProviderFromEnv(context.Background(), nil); err == nil {
		t.Fatal("expected error without any API key")
	}
}

func TestNewProviderFromEnv_PrefixedKey(t *testing.T) {
	clearKeys(t)
	t.Setenv("LEXPLANET_LLM_PROVIDER", ProviderOpenAI)
	t.Setenv("LEXPLANET_OPENAI_API_KEY", "sk-test")
	t.Setenv("LEXPLANET_OPENAI_MODEL", "gpt-4o")

	p, err := NewProviderFromEnv(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Errorf("ModelID() = %q, want gpt-4o", p.ModelID())
	}
}

func TestNewProviderFromEnv_DiscoversVendorKey(t *testing.T) {
	clearKeys(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	p, err := NewProviderFromEnv(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Errorf("ModelID() = %q, want gpt-4o-mini", p.ModelID())
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Cost = %v, want 0.75", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Error("expected nil for unknown model")
	}
}
