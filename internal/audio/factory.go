package audio

import (
	"context"
	"fmt"
	"log/slog"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAuto   = "auto"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderLocal  = "local"
	ProviderNone   = "none"
)

// Config selects and tunes the speaker built by New.
type Config struct {
	Enabled  bool
	Provider string
	CacheDir string
	Rate     float64
	Player   string
	Voices   map[string]string

	GeminiAPIKey string
	GeminiModel  string
	GeminiVoice  string

	OpenAIAPIKey string
	OpenAIModel  string
	OpenAIVoice  string
}

// New builds the speaker chain for cfg, always wrapped in a Player. Auto
// prefers Gemini, then OpenAI, then the OS voice, depending on which keys
// are present. Remote speakers fall back to the OS voice.
func New(ctx context.Context, cfg Config) (*Player, error) {
	if !cfg.Enabled || cfg.Provider == ProviderNone {
		return NewPlayer(NopSpeaker{}), nil
	}

	local := NewLocalSpeaker(cfg.Rate, cfg.Voices)
	provider := cfg.Provider
	if provider == "" || provider == ProviderAuto {
		provider = autoProvider(cfg)
	}

	var synth Synthesizer
	switch provider {
	case ProviderLocal:
		return NewPlayer(local), nil
	case ProviderGemini:
		s, err := NewGeminiSynthesizer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiVoice)
		if err != nil {
			return nil, err
		}
		synth = s
	case ProviderOpenAI:
		s, err := NewOpenAISynthesizer(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIVoice, cfg.Rate)
		if err != nil {
			return nil, err
		}
		synth = s
	default:
		return nil, fmt.Errorf("unknown audio provider %q", cfg.Provider)
	}

	slog.Debug("remote speech enabled", "component", "audio", "synthesizer", synth.Name())
	remote := NewRemoteSpeaker(synth, NewCommandSink(cfg.Player), local, WithCache(NewCache(cfg.CacheDir)))
	return NewPlayer(remote), nil
}

func autoProvider(cfg Config) string {
	switch {
	case cfg.GeminiAPIKey != "":
		return ProviderGemini
	case cfg.OpenAIAPIKey != "":
		return ProviderOpenAI
	default:
		return ProviderLocal
	}
}
