package audio

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

// OpenAI speech defaults.
const (
	DefaultOpenAIModel = "tts-1"
	DefaultOpenAIVoice = "alloy"
)

// OpenAISynthesizer speaks through the OpenAI speech endpoint.
type OpenAISynthesizer struct {
	client *openai.Client
	model  string
	voice  string
	speed  float64
}

// NewOpenAISynthesizer creates an OpenAI speech client. rate maps to the
// endpoint's speed parameter.
func NewOpenAISynthesizer(apiKey, model, voice string, rate float64) (*OpenAISynthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	if voice == "" {
		voice = DefaultOpenAIVoice
	}
	if rate <= 0 {
		rate = 1
	}
	return &OpenAISynthesizer{
		client: openai.NewClient(apiKey),
		model:  model,
		voice:  voice,
		speed:  rate,
	}, nil
}

func (s *OpenAISynthesizer) Name() string { return "openai" }

// Synthesize ignores locale; the model detects the language from text.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text, _ string) (Clip, error) {
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.SpeechVoice(s.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          s.speed,
	})
	if err != nil {
		return Clip{}, fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return Clip{}, fmt.Errorf("read openai speech: %w", err)
	}
	return Clip{Data: data, Format: "mp3"}, nil
}
