package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driving"
)

// runInteractive runs all five phases with a question loop on stdin.
func runInteractive(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	reporter := NewReporter(out)

	return withPipeline(cmd, reporter, func(ctx context.Context, run *driving.Run) error {
		reporter.Banner(run.Session.Examples())
		run.Session.Run(ctx, NewConsole(cmd.InOrStdin(), out))
		return nil
	})
}

// withPipeline loads settings, builds the pipeline and executes it with
// body as phase 5. Interrupts cancel the context; the run log is still saved.
func withPipeline(
	cmd *cobra.Command,
	reporter *Reporter,
	body func(ctx context.Context, run *driving.Run) error,
) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	pipeline, cleanup, err := newPipeline(ctx, settings, reporter)
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	return pipeline.Execute(ctx, func(run *driving.Run) error {
		return body(ctx, run)
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// progressWriter returns where progress goes when stdout carries a protocol.
func progressWriter(cmd *cobra.Command) io.Writer {
	return cmd.ErrOrStderr()
}
