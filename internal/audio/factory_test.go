package audio

import (
	"context"
	"testing"
)

func TestNew_Providers(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"disabled", Config{Enabled: false, Provider: ProviderLocal}, "nop"},
		{"none", Config{Enabled: true, Provider: ProviderNone}, "nop"},
		{"auto without keys", Config{Enabled: true, Provider: ProviderAuto}, "local"},
		{"empty provider", Config{Enabled: true}, "local"},
		{"auto with openai key", Config{Enabled: true, Provider: ProviderAuto, OpenAIAPIKey: "sk-test"}, "remote"},
		{"explicit openai", Config{Enabled: true, Provider: ProviderOpenAI, OpenAIAPIKey: "sk-test"}, "remote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(ctx, tt.cfg)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			var got string
			switch p.speaker.(type) {
			case NopSpeaker:
				got = "nop"
			case *LocalSpeaker:
				got = "local"
			case *RemoteSpeaker:
				got = "remote"
			}
			if got != tt.want {
				t.Errorf("speaker = %s (%T), want %s", got, p.speaker, tt.want)
			}
		})
	}
}

func TestNew_Errors(t *testing.T) {
	ctx := context.Background()
	for _, cfg := range []Config{
		{Enabled: true, Provider: ProviderGemini},
		{Enabled: true, Provider: ProviderOpenAI},
		{Enabled: true, Provider: "polly"},
	} {
		if _, err := New(ctx, cfg); err == nil {
			t.Errorf("New(%q) succeeded, want error", cfg.Provider)
		}
	}
}
