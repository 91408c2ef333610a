package audio

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Gemini speech defaults.
const (
	DefaultGeminiModel = "gemini-2.5-flash-preview-tts"
	DefaultGeminiVoice = "Kore"
)

// GeminiSynthesizer speaks through the Gemini API's audio modality.
type GeminiSynthesizer struct {
	client *genai.Client
	model  string
	voice  string
}

// NewGeminiSynthesizer creates a Gemini speech client. Empty model and
// voice use the defaults.
func NewGeminiSynthesizer(ctx context.Context, apiKey, model, voice string) (*GeminiSynthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	if model == "" {
		model = DefaultGeminiModel
	}
	if voice == "" {
		voice = DefaultGeminiVoice
	}
	return &GeminiSynthesizer{client: client, model: model, voice: voice}, nil
}

func (s *GeminiSynthesizer) Name() string { return "gemini" }

func (s *GeminiSynthesizer) Synthesize(ctx context.Context, text, locale string) (Clip, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			LanguageCode: locale,
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: s.voice},
			},
		},
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(text), config)
	if err != nil {
		return Clip{}, fmt.Errorf("gemini speech: %w", err)
	}

	pcm, err := inlineAudio(result)
	if err != nil {
		return Clip{}, err
	}
	return Clip{Data: wrapPCM(pcm, pcmSampleRate, pcmChannels, pcmBits), Format: "wav"}, nil
}

// inlineAudio returns the first inline audio part of a response.
func inlineAudio(result *genai.GenerateContentResponse) ([]byte, error) {
	if result == nil {
		return nil, errors.New("gemini speech: empty response")
	}
	for _, c := range result.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
				return p.InlineData.Data, nil
			}
		}
	}
	return nil, errors.New("gemini speech: response has no audio")
}
