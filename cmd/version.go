package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags.
var Version = "devel"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the minsh version.",
	Args:  cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "minsh", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
