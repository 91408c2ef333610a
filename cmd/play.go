package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game, optionally with languages preselected",
	Example: `  lexplanet play
  lexplanet play --native en --target tr
  lexplanet play --native tr --target fr --mode grammar`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var flags gameFlags
		flags.native, _ = cmd.Flags().GetString("native")
		flags.target, _ = cmd.Flags().GetString("target")
		flags.mode, _ = cmd.Flags().GetString("mode")
		return runApp(cmd, flags)
	},
}

func init() {
	playCmd.Flags().String("native", "", "Native language code (en, fr, tr)")
	playCmd.Flags().String("target", "", "Target language code (en, fr, tr)")
	playCmd.Flags().String("mode", "", "Game mode: vocabulary or grammar")
}
