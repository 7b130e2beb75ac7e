package driving

import (
	"context"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
)

// Collector fetches raw documents from the source list.
type Collector interface {
	// Collect returns the documents gathered and the phase record describing
	// which fetch path produced them. It never fails; per-source failures
	// are listed in the record.
	Collect(ctx context.Context, sources []string) ([]domain.RawDocument, *domain.CollectionPhase)
}

// Extractor turns raw documents into threat intelligence documents.
type Extractor interface {
	// Extract returns one Document per raw document on the generative path,
	// or the built-in dataset on the substitute path.
	Extract(ctx context.Context, raws []domain.RawDocument) ([]domain.Document, *domain.ExtractionPhase)
}

// Indexer builds the semantic index and the display table.
type Indexer interface {
	// Build embeds and stores every document. The returned knowledge base
	// is unavailable when any step failed.
	Build(ctx context.Context, docs []domain.Document) (driven.KnowledgeBase, *domain.KnowledgeBasePhase)
}

// Retriever answers free-text questions. The answer is always usable.
type Retriever interface {
	// Answer returns a grounded answer, a static-table answer, or
	// domain.InsufficientData. A non-nil error reports why grounded
	// generation was skipped; the answer is still the one to show.
	Answer(ctx context.Context, question string) (string, error)

	// Status describes which retrieval tiers are available.
	Status() *domain.RetrievalPhase
}
