package cmd

import (
	"fmt"

	"github.com/abhisek/lexplanet/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset score and unlocked planets",
	Long:  "Reset score and unlocked planets. Answer history is kept for `lexplanet stats`.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this erases your progress; rerun with --yes to confirm")
		}

		cfg, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		progress, closeProgress, err := store.OpenProgress(cmd.Context(), cfg.Storage.ProgressURL, s)
		if err != nil {
			return fmt.Errorf("open progress store: %w", err)
		}
		defer closeProgress()

		if err := progress.ResetProgress(cmd.Context()); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset. Only planet 1 is unlocked.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Confirm the reset")
}
