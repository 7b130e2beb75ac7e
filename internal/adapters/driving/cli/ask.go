package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driving"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Run the pipeline and answer one question",
	Long: `Runs collection, extraction and knowledge base phases, answers a single
question the same way the interactive session would, and saves the run log.

Example:
  cyberx ask "Recent activities of APT31?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	reporter := NewReporter(cmd.OutOrStdout())

	return withPipeline(cmd, reporter, func(ctx context.Context, run *driving.Run) error {
		answer, err := run.Session.Ask(ctx, question)
		if err != nil {
			reporter.Fallback(err)
		}
		reporter.Answer(answer)
		run.Session.Finish()
		return nil
	})
}
