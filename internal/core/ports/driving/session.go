package driving

import (
	"context"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
)

// Session is the question-answer loop over one input stream.
type Session interface {
	// Ask logs the question and answers it, checking the static table
	// before the Retriever. A non-nil error is the Retriever's fallback
	// diagnostic and accompanies a usable answer.
	Ask(ctx context.Context, question string) (string, error)

	// Run reads questions from console until a termination keyword or the
	// end of input.
	Run(ctx context.Context, console driven.Console)

	// Finish marks the session completed unless it already ended.
	Finish()

	// Phase returns a snapshot of the session's run-log section.
	Phase() *domain.SessionPhase

	// Examples returns the predefined questions as written.
	Examples() []string
}
