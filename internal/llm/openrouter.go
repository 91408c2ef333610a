package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "google/gemini-2.0-flash-001"

	// openRouterTitle is the app name OpenRouter shows in its usage
	// dashboard for briefing requests.
	openRouterTitle   = "LexPlanet"
	openRouterReferer = "https://github.com/abhisek/lexplanet"
)

// OpenRouterProvider is OpenAIProvider pointed at OpenRouter, with its
// app attribution headers on every request.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	client := &http.Client{Transport: attributionTransport{base: http.DefaultTransport}}
	inner := newOpenAICompatible(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	}, defaultOpenRouterModel, client)

	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-Title", openRouterTitle)
	req.Header.Set("HTTP-Referer", openRouterReferer)
	return t.base.RoundTrip(req)
}
