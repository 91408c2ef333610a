package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexplanet/internal/llm"
	"github.com/abhisek/lexplanet/internal/session"
)

// isolate points every lookup at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"LEXPLANET_CONFIG", "LEXPLANET_PASS_THRESHOLD", "LEXPLANET_MAX_LEVEL", "LEXPLANET_DB",
		"LEXPLANET_PROGRESS_URL", "LEXPLANET_AUDIO", "LEXPLANET_AUDIO_PROVIDER", "LEXPLANET_LOG_LEVEL",
		"LEXPLANET_FEEDBACK_DELAY", "LEXPLANET_LLM_PROVIDER", "LEXPLANET_ANTHROPIC_API_KEY",
		"LEXPLANET_ANTHROPIC_MODEL", "LEXPLANET_OPENAI_API_KEY", "LEXPLANET_GEMINI_API_KEY",
		"LEXPLANET_NATIVE", "LEXPLANET_TARGET", "LEXPLANET_MODE", "LEXPLANET_OPENAI_MODEL",
		"LEXPLANET_GEMINI_MODEL", "LEXPLANET_OPENROUTER_API_KEY", "LEXPLANET_OPENROUTER_MODEL",
		"LEXPLANET_OPENAI_BASE_URL", "LEXPLANET_OPENROUTER_BASE_URL",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default().Game, cfg.Game)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, session.DefaultConfig(), cfg.SessionConfig())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndSecrets(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "lexplanet", "config.yaml")
	writeFile(t, path, `
game:
  pass_threshold: 0.7
  questions_per_level: 5
  feedback_delay: 800ms
  native: tr
  target: fr
  mode: grammar
storage:
  progress_url: redis://localhost:6379/2
audio:
  provider: local
  voices:
    tr-TR: Yelda
llm:
  provider: openai
  models:
    openai: gpt-4.1-mini
log:
  level: debug
`)
	writeFile(t, filepath.Join(dir, "lexplanet", "secrets.yaml"), `
providers:
  openai:
    api_key: sk-file
  gemini:
    api_key: gm-file
`)

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, 0.7, cfg.Game.PassThreshold)
	assert.Equal(t, 20, cfg.Game.MaxLevel, "unset keys keep defaults")
	assert.Equal(t, 800*time.Millisecond, cfg.Game.FeedbackDelay)
	assert.Equal(t, "redis://localhost:6379/2", cfg.Storage.ProgressURL)
	assert.Equal(t, "Yelda", cfg.Audio.Voices["tr-TR"])
	assert.Equal(t, "gm-file", cfg.Audio.GeminiAPIKey)
	assert.Equal(t, "sk-file", cfg.Audio.OpenAIAPIKey)

	lc := cfg.LLMProviderConfig()
	assert.Equal(t, llm.ProviderOpenAI, lc.Provider)
	assert.Equal(t, "sk-file", lc.OpenAI.APIKey)
	assert.Equal(t, "gpt-4.1-mini", lc.OpenAI.Model)
	assert.NoError(t, lc.Validate())

	sc := cfg.SessionConfig()
	assert.Equal(t, 5, sc.QuestionsPerLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "game:\n  pass_threshold: 0.7\n")
	t.Setenv("LEXPLANET_CONFIG", path)
	t.Setenv("LEXPLANET_PASS_THRESHOLD", "0.9")
	t.Setenv("LEXPLANET_DB", "/tmp/x.db")
	t.Setenv("LEXPLANET_AUDIO", "false")
	t.Setenv("LEXPLANET_LOG_LEVEL", "WARN")
	t.Setenv("LEXPLANET_FEEDBACK_DELAY", "2s")
	t.Setenv("LEXPLANET_MAX_LEVEL", "not-a-number")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, 0.9, cfg.Game.PassThreshold)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.DBPath)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 2*time.Second, cfg.Game.FeedbackDelay)
	assert.Equal(t, 20, cfg.Game.MaxLevel, "malformed values are ignored")
}

func TestLoad_EnvModelBeatsFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "lexplanet", "config.yaml"), "llm:\n  models:\n    anthropic: claude-sonnet\n")
	t.Setenv("LEXPLANET_ANTHROPIC_MODEL", "claude-haiku")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku", cfg.LLMProviderConfig().Anthropic.Model)
}

func TestLoad_BadYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "game: [unclosed")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"threshold zero", func(c *Config) { c.Game.PassThreshold = 0 }},
		{"threshold above one", func(c *Config) { c.Game.PassThreshold = 1.5 }},
		{"max level", func(c *Config) { c.Game.MaxLevel = 0 }},
		{"negative penalty", func(c *Config) { c.Game.WrongPenalty = -1 }},
		{"negative pool", func(c *Config) { c.Game.QuestionsPerLevel = -2 }},
		{"same languages", func(c *Config) { c.Game.Native, c.Game.Target = "tr", "TR" }},
		{"unknown language", func(c *Config) { c.Game.Native = "de" }},
		{"unknown mode", func(c *Config) { c.Game.Mode = "listening" }},
		{"audio provider", func(c *Config) { c.Audio.Provider = "polly" }},
		{"log level", func(c *Config) { c.Log.Level = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Default()
	cfg.Game.Native = "en"
	cfg.Game.Target = "tr"
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Game, loaded.Game)
	assert.Equal(t, cfg.Audio.Rate, loaded.Audio.Rate)
}

func TestSpeakerConfig_DefaultCache(t *testing.T) {
	cfg := Default()
	cfg.Audio.OpenAIAPIKey = "sk-x"

	sc := cfg.SpeakerConfig("/data/audio")
	assert.Equal(t, "/data/audio", sc.CacheDir)
	assert.Equal(t, "auto", sc.Provider)
	assert.Equal(t, "sk-x", sc.OpenAIAPIKey)

	cfg.Audio.CacheDir = "/custom"
	assert.Equal(t, "/custom", cfg.SpeakerConfig("/data/audio").CacheDir)
}
