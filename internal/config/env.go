package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// applyEnv overlays LEXPLANET_* variables on the loaded file.
func (c *Config) applyEnv() {
	g := &c.Game
	g.PassThreshold = envFloat("LEXPLANET_PASS_THRESHOLD", g.PassThreshold)
	g.MaxLevel = envInt("LEXPLANET_MAX_LEVEL", g.MaxLevel)
	g.PointsPerCorrect = envInt("LEXPLANET_POINTS_PER_CORRECT", g.PointsPerCorrect)
	g.WrongPenalty = envInt("LEXPLANET_WRONG_PENALTY", g.WrongPenalty)
	g.QuestionsPerLevel = envInt("LEXPLANET_QUESTIONS_PER_LEVEL", g.QuestionsPerLevel)
	g.FeedbackDelay = envDuration("LEXPLANET_FEEDBACK_DELAY", g.FeedbackDelay)
	g.Native = envStr("LEXPLANET_NATIVE", g.Native)
	g.Target = envStr("LEXPLANET_TARGET", g.Target)
	g.Mode = envStr("LEXPLANET_MODE", g.Mode)

	c.Storage.DBPath = envStr("LEXPLANET_DB", c.Storage.DBPath)
	c.Storage.ProgressURL = envStr("LEXPLANET_PROGRESS_URL", c.Storage.ProgressURL)

	c.Audio.Enabled = envBool("LEXPLANET_AUDIO", c.Audio.Enabled)
	c.Audio.Provider = envStr("LEXPLANET_AUDIO_PROVIDER", c.Audio.Provider)
	c.Audio.CacheDir = envStr("LEXPLANET_AUDIO_CACHE", c.Audio.CacheDir)
	c.Audio.Player = envStr("LEXPLANET_AUDIO_PLAYER", c.Audio.Player)
	c.Audio.GeminiAPIKey = envStr("LEXPLANET_GEMINI_API_KEY", c.Audio.GeminiAPIKey)
	c.Audio.OpenAIAPIKey = envStr("LEXPLANET_OPENAI_API_KEY", c.Audio.OpenAIAPIKey)

	c.Content.BankPath = envStr("LEXPLANET_CONTENT", c.Content.BankPath)
	c.Content.UpdateURL = envStr("LEXPLANET_CONTENT_URL", c.Content.UpdateURL)

	c.Log.Level = strings.ToLower(envStr("LEXPLANET_LOG_LEVEL", c.Log.Level))
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
