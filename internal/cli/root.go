// Package cli implements the hippo command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hippo",
	Short: "Privacy-bounded telemetry for chat-bot runtimes",
	Long:  "Normalizes bot runtime updates into compact, redacted telemetry records\nand runs the collector that receives and stores them.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
