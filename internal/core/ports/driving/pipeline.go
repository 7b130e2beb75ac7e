package driving

import (
	"context"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
)

// Pipeline runs the five stages in order and persists the run log.
type Pipeline interface {
	// Execute runs collection, extraction, indexing and retrieval setup,
	// then hands the prepared run to body. The run log is saved exactly
	// once afterwards, including when body fails or panics.
	Execute(ctx context.Context, body func(run *Run) error) error
}

// Run is one prepared pipeline execution.
type Run struct {
	// Log is the accumulating run log.
	Log *domain.RunLog

	// Session answers questions against this run's knowledge base.
	Session Session

	// Entries are the knowledge base display rows.
	Entries []domain.KnowledgeEntry
}
