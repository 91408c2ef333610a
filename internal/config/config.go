// Package config loads lexplanet settings from a YAML file, an optional
// secrets file beside it, and LEXPLANET_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/lexplanet/internal/audio"
	"github.com/abhisek/lexplanet/internal/content"
	"github.com/abhisek/lexplanet/internal/llm"
	"github.com/abhisek/lexplanet/internal/session"
)

// Config holds all application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Audio   AudioConfig   `yaml:"audio"`
	LLM     LLMConfig     `yaml:"llm"`
	Content ContentConfig `yaml:"content"`
	Log     LogConfig     `yaml:"log"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// GameConfig holds the progression rules and the default setup choices.
type GameConfig struct {
	PassThreshold     float64       `yaml:"pass_threshold"`
	MaxLevel          int           `yaml:"max_level"`
	PointsPerCorrect  int           `yaml:"points_per_correct"`
	WrongPenalty      int           `yaml:"wrong_penalty"`
	QuestionsPerLevel int           `yaml:"questions_per_level"`
	DialogueSlots     int           `yaml:"dialogue_slots"`
	FeedbackDelay     time.Duration `yaml:"feedback_delay"`

	Native string `yaml:"native,omitempty"`
	Target string `yaml:"target,omitempty"`
	Mode   string `yaml:"mode,omitempty"`
}

// StorageConfig selects where progress and events are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path,omitempty"`

	// ProgressURL is "sqlite" (default) or a redis:// URL.
	ProgressURL string `yaml:"progress_url,omitempty"`
}

// AudioConfig holds speech playback settings.
type AudioConfig struct {
	Enabled bool `yaml:"enabled"`

	// Provider is auto, gemini, openai, local or none.
	Provider string  `yaml:"provider"`
	CacheDir string  `yaml:"cache_dir,omitempty"`
	Rate     float64 `yaml:"rate"`

	// Player overrides the command used to play synthesized audio.
	Player string `yaml:"player,omitempty"`

	GeminiModel string `yaml:"gemini_model,omitempty"`
	GeminiVoice string `yaml:"gemini_voice,omitempty"`
	OpenAIModel string `yaml:"openai_model,omitempty"`
	OpenAIVoice string `yaml:"openai_voice,omitempty"`

	// Voices maps a locale such as "tr-TR" to a local OS voice name.
	Voices map[string]string `yaml:"voices,omitempty"`

	// Keys are filled from secrets.yaml.
	GeminiAPIKey string `yaml:"-"`
	OpenAIAPIKey string `yaml:"-"`
}

// LLMConfig holds briefing generation settings.
type LLMConfig struct {
	// Provider is empty to auto-detect from API keys.
	Provider string            `yaml:"provider,omitempty"`
	Models   map[string]string `yaml:"models,omitempty"`

	// APIKeys are filled from secrets.yaml, keyed by provider name.
	APIKeys map[string]string `yaml:"-"`
}

// ContentConfig points at an alternative content pack.
type ContentConfig struct {
	BankPath  string `yaml:"bank_path,omitempty"`
	UpdateURL string `yaml:"update_url,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// SecretsConfig holds API keys loaded from secrets.yaml.
type SecretsConfig struct {
	Providers map[string]struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"providers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	g := session.DefaultConfig()
	return &Config{
		Game: GameConfig{
			PassThreshold:     g.PassThreshold,
			MaxLevel:          g.MaxLevel,
			PointsPerCorrect:  g.PointsPerCorrect,
			WrongPenalty:      g.WrongPenalty,
			QuestionsPerLevel: g.QuestionsPerLevel,
			DialogueSlots:     g.DialogueSlots,
			FeedbackDelay:     g.FeedbackDelay,
		},
		Storage: StorageConfig{ProgressURL: "sqlite"},
		Audio: AudioConfig{
			Enabled:  true,
			Provider: "auto",
			Rate:     0.9,
		},
		Content: ContentConfig{
			UpdateURL: "https://lexplanet.abhisek.dev/packs",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Dir returns $XDG_CONFIG_HOME/lexplanet, or ~/.config/lexplanet.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lexplanet"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "lexplanet"), nil
}

// ResolvePath returns explicit if set, else $LEXPLANET_CONFIG, else
// config.yaml in Dir.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p := os.Getenv("LEXPLANET_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file at path (see ResolvePath), its secrets.yaml
// sibling, and environment overrides. A missing file yields defaults.
func Load(path string) (*Config, error) {
	path, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.Path = path
	}

	if err := loadSecrets(filepath.Dir(path), cfg); err != nil {
		return nil, fmt.Errorf("load secrets: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// loadSecrets loads API keys from secrets.yaml.
func loadSecrets(dir string, cfg *Config) error {
	data, err := os.ReadFile(filepath.Join(dir, "secrets.yaml"))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read secrets: %w", err)
	}

	var secrets SecretsConfig
	if err := yaml.Unmarshal(data, &secrets); err != nil {
		return fmt.Errorf("parse secrets: %w", err)
	}

	cfg.LLM.APIKeys = make(map[string]string, len(secrets.Providers))
	for name, secret := range secrets.Providers {
		cfg.LLM.APIKeys[name] = secret.APIKey
	}
	cfg.Audio.GeminiAPIKey = cfg.LLM.APIKeys[llm.ProviderGemini]
	cfg.Audio.OpenAIAPIKey = cfg.LLM.APIKeys[llm.ProviderOpenAI]
	return nil
}

// Save writes cfg as YAML to path, creating the directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects rule values the engine cannot honour.
func (c *Config) Validate() error {
	var errs []error
	g := c.Game
	if g.PassThreshold <= 0 || g.PassThreshold > 1 {
		errs = append(errs, fmt.Errorf("game.pass_threshold must be in (0, 1], got %v", g.PassThreshold))
	}
	if g.MaxLevel < 1 {
		errs = append(errs, fmt.Errorf("game.max_level must be at least 1, got %d", g.MaxLevel))
	}
	if g.PointsPerCorrect < 1 {
		errs = append(errs, fmt.Errorf("game.points_per_correct must be positive, got %d", g.PointsPerCorrect))
	}
	if g.WrongPenalty < 0 {
		errs = append(errs, fmt.Errorf("game.wrong_penalty must not be negative, got %d", g.WrongPenalty))
	}
	if g.QuestionsPerLevel < 0 {
		errs = append(errs, fmt.Errorf("game.questions_per_level must not be negative, got %d", g.QuestionsPerLevel))
	}
	if g.Native != "" {
		if _, err := content.ParseLanguage(g.Native); err != nil {
			errs = append(errs, fmt.Errorf("game.native: %w", err))
		}
	}
	if g.Target != "" {
		if _, err := content.ParseLanguage(g.Target); err != nil {
			errs = append(errs, fmt.Errorf("game.target: %w", err))
		}
	}
	if g.Native != "" && strings.EqualFold(g.Native, g.Target) {
		errs = append(errs, fmt.Errorf("game.native and game.target must differ"))
	}
	if g.Mode != "" {
		if _, err := session.ParseMode(g.Mode); err != nil {
			errs = append(errs, fmt.Errorf("game.mode: %w", err))
		}
	}
	switch c.Audio.Provider {
	case "auto", "gemini", "openai", "local", "none":
	default:
		errs = append(errs, fmt.Errorf("audio.provider must be auto, gemini, openai, local or none, got %q", c.Audio.Provider))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	return errors.Join(errs...)
}

// SessionConfig converts the game section into engine rules.
func (c *Config) SessionConfig() session.Config {
	return session.Config{
		PassThreshold:     c.Game.PassThreshold,
		MaxLevel:          c.Game.MaxLevel,
		PointsPerCorrect:  c.Game.PointsPerCorrect,
		WrongPenalty:      c.Game.WrongPenalty,
		QuestionsPerLevel: c.Game.QuestionsPerLevel,
		DialogueSlots:     c.Game.DialogueSlots,
		FeedbackDelay:     c.Game.FeedbackDelay,
	}
}

// LLMProviderConfig merges llm.ConfigFromEnv with file settings and
// secrets. Environment values win over the file.
func (c *Config) LLMProviderConfig() llm.Config {
	cfg := llm.ConfigFromEnv()

	if c.LLM.Provider != "" && os.Getenv("LEXPLANET_LLM_PROVIDER") == "" {
		cfg.Provider = c.LLM.Provider
	}

	setIfEmpty := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	setIfEmpty(&cfg.Anthropic.APIKey, c.LLM.APIKeys[llm.ProviderAnthropic])
	setIfEmpty(&cfg.OpenAI.APIKey, c.LLM.APIKeys[llm.ProviderOpenAI])
	setIfEmpty(&cfg.Gemini.APIKey, c.LLM.APIKeys[llm.ProviderGemini])
	setIfEmpty(&cfg.OpenRouter.APIKey, c.LLM.APIKeys[llm.ProviderOpenRouter])

	overrideModel := func(dst *string, provider, envName string) {
		if m := c.LLM.Models[provider]; m != "" && os.Getenv(envName) == "" {
			*dst = m
		}
	}
	overrideModel(&cfg.Anthropic.Model, llm.ProviderAnthropic, "LEXPLANET_ANTHROPIC_MODEL")
	overrideModel(&cfg.OpenAI.Model, llm.ProviderOpenAI, "LEXPLANET_OPENAI_MODEL")
	overrideModel(&cfg.Gemini.Model, llm.ProviderGemini, "LEXPLANET_GEMINI_MODEL")
	overrideModel(&cfg.OpenRouter.Model, llm.ProviderOpenRouter, "LEXPLANET_OPENROUTER_MODEL")

	return cfg
}

// SpeakerConfig converts the audio section. defaultCache is used when no
// cache_dir is configured.
func (c *Config) SpeakerConfig(defaultCache string) audio.Config {
	a := c.Audio
	cacheDir := a.CacheDir
	if cacheDir == "" {
		cacheDir = defaultCache
	}
	return audio.Config{
		Enabled:      a.Enabled,
		Provider:     a.Provider,
		CacheDir:     cacheDir,
		Rate:         a.Rate,
		Player:       a.Player,
		Voices:       a.Voices,
		GeminiAPIKey: a.GeminiAPIKey,
		GeminiModel:  a.GeminiModel,
		GeminiVoice:  a.GeminiVoice,
		OpenAIAPIKey: a.OpenAIAPIKey,
		OpenAIModel:  a.OpenAIModel,
		OpenAIVoice:  a.OpenAIVoice,
	}
}
