package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "courier",
	Short: "Courier - chat widget relay for an LLM responses API",
	Long: `Courier relays chat messages from a public website widget to an LLM
responses API without exposing the API credential to the browser.

It serves a single JSON endpoint:
  - POST accepts {"message": "..."} and returns {"reply": "..."}
  - OPTIONS acknowledges CORS preflight for the configured origin
  - every response carries fixed CORS headers for one allowed origin

The upstream credential stays on the server, resolved through the
secrets providers, and upstream failures are masked as an empty reply
so the widget never renders an error state.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.CompletionOptions.DisableDefaultCmd = false
}
