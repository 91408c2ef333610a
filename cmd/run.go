package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abhisek/lexplanet/internal/app"
	"github.com/abhisek/lexplanet/internal/audio"
	"github.com/abhisek/lexplanet/internal/briefing"
	"github.com/abhisek/lexplanet/internal/config"
	"github.com/abhisek/lexplanet/internal/content"
	"github.com/abhisek/lexplanet/internal/llm"
	"github.com/abhisek/lexplanet/internal/logging"
	"github.com/abhisek/lexplanet/internal/session"
	"github.com/abhisek/lexplanet/internal/store"
	"github.com/spf13/cobra"
)

// gameFlags preselect the setup screen. When both languages are given
// the game opens on the map.
type gameFlags struct {
	native string
	target string
	mode   string
}

// installedPackPath is where `content update` puts downloaded packs.
func installedPackPath(dataDir string) string {
	return filepath.Join(dataDir, "packs", "bank.yaml")
}

// packPath picks the content pack: the configured one, else a
// downloaded one, else "" for the embedded pack.
func packPath(cfg *config.Config, dataDir string) string {
	if cfg.Content.BankPath != "" {
		return cfg.Content.BankPath
	}
	if p := installedPackPath(dataDir); fileExists(p) {
		return p
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, flags gameFlags) error {
	ctx := cmd.Context()

	cfg, s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	dataDir, err := store.DataDir()
	if err != nil {
		return err
	}
	logFile, err := logging.Setup(dataDir, cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		logging.Discard()
	} else {
		defer logFile.Close()
	}

	catalog, err := content.Open(packPath(cfg, dataDir))
	if err != nil {
		return err
	}
	slog.Info("content loaded", "version", catalog.Version(), "levels", catalog.MaxLevel())

	progress, closeProgress, err := store.OpenProgress(ctx, cfg.Storage.ProgressURL, s)
	if err != nil {
		return fmt.Errorf("open progress store: %w", err)
	}
	defer closeProgress()

	// Speech and briefing generation are optional; the game works without them.
	var speaker session.Speaker
	if p, err := audio.New(ctx, cfg.SpeakerConfig(filepath.Join(dataDir, "audio"))); err != nil {
		slog.Warn("speech unavailable", "error", err)
	} else {
		speaker = p
	}

	provider, err := llm.NewProviderWithOverrides(ctx, cfg.LLMProviderConfig(), s.EventRepo())
	if err != nil {
		slog.Info("LLM provider not configured, using bundled briefings only", "error", err)
		provider = nil
	}
	briefer := briefing.NewService(catalog, provider, briefing.DefaultConfig())

	engine := session.New(cfg.SessionConfig(), catalog, progress, speaker, nil,
		session.WithEvents(s.EventRepo()))

	native, target, mode, err := resolveChoices(cfg, flags)
	if err != nil {
		return err
	}

	preconfigured := flags.native != "" && flags.target != ""
	if preconfigured {
		if err := engine.Configure(native, target, mode); err != nil {
			if errors.Is(err, session.ErrSameLanguage) {
				return fmt.Errorf("--native and --target must differ")
			}
			return err
		}
	}

	return app.Run(app.Options{
		Engine:     engine,
		Briefer:    briefer,
		Titles:     catalog,
		Native:     native,
		Target:     target,
		Mode:       mode,
		SkipSplash: preconfigured,
	})
}

// resolveChoices merges command-line choices over the config defaults.
// Empty values fall back to English → Turkish vocabulary.
func resolveChoices(cfg *config.Config, flags gameFlags) (native, target content.Language, mode session.Mode, err error) {
	pick := func(flag, conf string) string {
		if flag != "" {
			return flag
		}
		return conf
	}

	native, target = content.English, content.Turkish
	if v := pick(flags.native, cfg.Game.Native); v != "" {
		if native, err = content.ParseLanguage(v); err != nil {
			return "", "", 0, err
		}
	}
	if v := pick(flags.target, cfg.Game.Target); v != "" {
		if target, err = content.ParseLanguage(v); err != nil {
			return "", "", 0, err
		}
	}
	if v := pick(flags.mode, cfg.Game.Mode); v != "" {
		if mode, err = session.ParseMode(v); err != nil {
			return "", "", 0, err
		}
	}
	return native, target, mode, nil
}
