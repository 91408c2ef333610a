package cmd

import (
	"fmt"

	"github.com/abhisek/lexplanet/internal/content"
	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the program and bundled content versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "lexplanet", version)
		c, err := content.Default()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "bundled content", c.Version())
		return nil
	},
}
