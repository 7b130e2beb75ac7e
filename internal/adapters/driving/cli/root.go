// Package cli provides the cobra command tree for the cyberx binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/cyberx-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cyberx",
	Short: "Threat intelligence collection and analysis",
	Long: `CyberX collects recent threat reports, extracts structured threat actor
profiles, builds a semantic knowledge base and opens an interactive
Brainstorm & Analysis session over it.

Running cyberx without a subcommand executes the full five-phase pipeline:
  1. Data Collection         scrape the configured sources
  2. Information Extraction  turn reports into threat profiles
  3. Knowledge Base          embed the profiles into the semantic index
  4. RAG Query               prepare grounded question answering
  5. CLI Interface           ask questions until 'exit'

Every run is saved as "CyberX #<n>.json" in the run-log directory.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging to stderr")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
