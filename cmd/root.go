package cmd

import (
	"fmt"

	"github.com/abhisek/lexplanet/internal/config"
	"github.com/abhisek/lexplanet/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lexplanet",
	Short: "Vocabulary and grammar quiz across a map of planets",
	Long: `Lexplanet is a terminal language game. Pick your native language and a
target language, then clear planets by translating words or solving grammar
exercises. Each planet unlocks the next once you pass it.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, gameFlags{})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides LEXPLANET_CONFIG env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEXPLANET_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config named by --config, or the default one.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then LEXPLANET_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Storage.DBPath != "" {
		return cfg.Storage.DBPath, store.EnsureDir(cfg.Storage.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore loads the config and opens the event database.
func openStore(cmd *cobra.Command) (*config.Config, *store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, s, nil
}
