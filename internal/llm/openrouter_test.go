package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenRouterProvider_Briefing(t *testing.T) {
	var title, referer, path, model string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title = r.Header.Get("X-Title")
		referer = r.Header.Get("HTTP-Referer")
		path = r.URL.Path
		var body struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		model = body.Model

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(turkishBriefing, "stop"))
	}))
	defer server.Close()

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", BaseURL: server.URL + "/api/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := p.Generate(WithPurpose(context.Background(), PurposeBriefing), briefingRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != turkishBriefing {
		t.Fatalf("content = %s", resp.Content)
	}
	if title != openRouterTitle || referer != openRouterReferer {
		t.Errorf("attribution headers = %q / %q", title, referer)
	}
	if path != "/api/v1/chat/completions" {
		t.Errorf("path = %q", path)
	}
	if model != defaultOpenRouterModel {
		t.Errorf("model = %q, want %q", model, defaultOpenRouterModel)
	}
}

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(OpenRouterConfig{}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("model passes through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3.5-haiku"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "anthropic/claude-3.5-haiku" {
			t.Errorf("model = %q", p.ModelID())
		}
	})
}
