package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/lexplanet/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress, per-planet results and recent answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("recent")

		cfg, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		progress, closeProgress, err := store.OpenProgress(ctx, cfg.Storage.ProgressURL, s)
		if err != nil {
			return fmt.Errorf("open progress store: %w", err)
		}
		defer closeProgress()

		p, err := progress.LoadProgress(ctx)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		unlocked := max(p.MaxUnlockedLevel, 1)
		fmt.Fprintf(out, "Score: %d    Planets unlocked: %d/%d\n\n", p.Score, unlocked, cfg.Game.MaxLevel)

		stats, err := s.EventRepo().LevelStats(ctx)
		if err != nil {
			return fmt.Errorf("query level stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Fprintln(out, "No planets played yet.")
			return nil
		}

		fmt.Fprintln(out, "Planets")
		fmt.Fprintln(out, strings.Repeat("─", 64))
		fmt.Fprintf(out, "%-6s  %-10s  %8s  %6s  %6s  %10s\n",
			"Level", "Mode", "Attempts", "Passes", "Fails", "Accuracy")
		fmt.Fprintln(out, strings.Repeat("─", 64))
		for _, st := range stats {
			fmt.Fprintf(out, "%-6d  %-10s  %8d  %6d  %6d  %9.0f%%\n",
				st.Level, st.Mode, st.Attempts, st.Passes, st.Fails, st.Accuracy()*100)
		}

		if limit <= 0 {
			return nil
		}
		answers, err := s.EventRepo().RecentAnswers(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}
		if len(answers) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Recent answers")
		fmt.Fprintln(out, strings.Repeat("─", 64))
		for _, a := range answers {
			mark := "✓"
			detail := a.Given
			if !a.Correct {
				mark = "✗"
				detail = fmt.Sprintf("%s (expected %s)", a.Given, a.Expected)
			}
			fmt.Fprintf(out, "%s  %s  L%-3d %s→%s  %s\n",
				a.Timestamp.Local().Format("2006-01-02 15:04"), mark, a.Level, a.Native, a.Target, detail)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("recent", "n", 10, "Number of recent answers to show (0 hides them)")
}
