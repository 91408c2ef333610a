package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abhisek/lexplanet/internal/content"
	"github.com/abhisek/lexplanet/internal/packupdate"
	"github.com/abhisek/lexplanet/internal/store"
	"github.com/spf13/cobra"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect, validate, import and update content packs",
}

// activeCatalog opens the pack the game would use.
func activeCatalog(cmd *cobra.Command) (*content.Catalog, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	dataDir, err := store.DataDir()
	if err != nil {
		return nil, "", err
	}
	path := packPath(cfg, dataDir)
	c, err := content.Open(path)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		path = "(embedded)"
	}
	return c, path, nil
}

var contentInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarise the active content pack",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, path, err := activeCatalog(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		words, exercises, briefings := c.Counts()

		fmt.Fprintf(out, "Pack:       %s\n", path)
		fmt.Fprintf(out, "Version:    %s\n", c.Version())
		fmt.Fprintf(out, "Levels:     %d\n", c.MaxLevel())
		fmt.Fprintf(out, "Words:      %d (levels %s)\n", words, levelList(c.WordLevels()))
		fmt.Fprintf(out, "Exercises:  %d\n", exercises)
		for _, info := range content.Languages() {
			levels := c.GrammarLevels(info.Code)
			if len(levels) == 0 {
				continue
			}
			fmt.Fprintf(out, "  %-10s levels %s\n", info.Name, levelList(levels))
		}
		fmt.Fprintf(out, "Briefings:  %d\n", briefings)
		return nil
	},
}

func levelList(levels []int) string {
	if len(levels) == 0 {
		return "none"
	}
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = fmt.Sprint(l)
	}
	return strings.Join(parts, ",")
}

var contentWordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List the words of a level",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetInt("level")

		c, _, err := activeCatalog(cmd)
		if err != nil {
			return err
		}
		words := c.WordsByLevel(level)
		if len(words) == 0 {
			return fmt.Errorf("no words on level %d", level)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s  %-10s  %-18s  %-18s  %s\n", "ID", "Category", "English", "Français", "Türkçe")
		fmt.Fprintln(out, strings.Repeat("─", 84))
		for _, w := range words {
			fmt.Fprintf(out, "%-16s  %-10s  %-18s  %-18s  %s\n",
				truncate(w.ID, 16), w.Category,
				w.In(content.English), w.In(content.French), w.In(content.Turkish))
		}
		return nil
	},
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate <bank.yaml>",
	Short: "Check a content pack against the schema and consistency rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := content.LoadBank(args[0])
		if err != nil {
			return err
		}
		words, exercises, briefings := content.NewCatalog(b).Counts()
		fmt.Fprintf(cmd.OutOrStdout(), "OK: version %s, %d words, %d exercises, %d briefings\n",
			b.Version, words, exercises, briefings)
		return nil
	},
}

var contentImportCmd = &cobra.Command{
	Use:   "import <workbook.xlsx>",
	Short: "Merge words and exercises from a spreadsheet into a pack",
	Long: `Merge the Words and Grammar sheets of an Excel workbook into a content
pack. Rows replace pack entries with the same id. The merged pack is
validated before it is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _ := cmd.Flags().GetString("into")
		outPath, _ := cmd.Flags().GetString("out")
		bump, _ := cmd.Flags().GetString("version")

		var b *content.Bank
		var err error
		if base != "" {
			b, err = content.LoadBank(base)
		} else {
			b, err = content.DefaultBank()
		}
		if err != nil {
			return err
		}

		words, grammar, err := content.ImportXLSX(args[0])
		if err != nil {
			return err
		}
		added, replaced := b.Merge(words, grammar)
		if bump != "" {
			b.Version = bump
		}
		if err := b.Validate(); err != nil {
			return fmt.Errorf("merged pack is invalid: %w", err)
		}

		var w io.Writer = cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			defer f.Close()
			w = f
		}
		if err := b.EncodeYAML(w); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Imported %d new and %d replaced entries.\n", added, replaced)
		return nil
	},
}

var contentUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Download the latest content pack",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Content.UpdateURL == "" {
			return fmt.Errorf("no content update URL configured")
		}
		c, _, err := activeCatalog(cmd)
		if err != nil {
			return err
		}
		dataDir, err := store.DataDir()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		checker := packupdate.NewChecker(cfg.Content.UpdateURL)
		if only, _ := cmd.Flags().GetBool("check"); only {
			res, err := checker.Check(ctx, c.Version())
			if err != nil {
				return err
			}
			if res.UpdateAvailable {
				fmt.Fprintf(cmd.OutOrStdout(), "Update available: %s → %s\n", res.CurrentVersion, res.LatestVersion)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Content pack %s is up to date.\n", res.CurrentVersion)
			}
			return nil
		}
		_, err = checker.Update(ctx, c.Version(), installedPackPath(dataDir), func(p packupdate.UpdateProgress) {
			fmt.Fprintln(cmd.OutOrStdout(), p.Message)
		})
		switch {
		case err == nil:
			if cfg.Content.BankPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Note: content.bank_path (%s) still takes precedence.\n", cfg.Content.BankPath)
			}
			return nil
		case errors.Is(err, packupdate.ErrAlreadyLatest):
			fmt.Fprintf(cmd.OutOrStdout(), "Content pack %s is already the latest.\n", c.Version())
			return nil
		}
		return err
	},
}

func init() {
	contentWordsCmd.Flags().IntP("level", "l", 1, "Level to list")
	contentImportCmd.Flags().String("into", "", "Pack to merge into (default: the embedded pack)")
	contentImportCmd.Flags().StringP("out", "o", "", "Write the merged pack here instead of stdout")
	contentImportCmd.Flags().String("version", "", "Set the version of the merged pack")
	contentUpdateCmd.Flags().Bool("check", false, "Only report whether a newer pack exists")

	contentCmd.AddCommand(contentInfoCmd)
	contentCmd.AddCommand(contentWordsCmd)
	contentCmd.AddCommand(contentValidateCmd)
	contentCmd.AddCommand(contentImportCmd)
	contentCmd.AddCommand(contentUpdateCmd)
}
