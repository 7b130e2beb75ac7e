package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cyberx-cli/internal/logger"
)

// Ensure IndexerService implements the interface.
var _ driving.Indexer = (*IndexerService)(nil)

// IndexerService embeds documents into a semantic index collection.
// It never fails: errors are recorded in the phase and the returned
// knowledge base is left unavailable.
type IndexerService struct {
	index      driven.SemanticIndex
	embedder   driven.EmbeddingService
	collection string
}

// NewIndexerService creates an indexer.
// index and embedder are optional; without either, no knowledge base is built.
func NewIndexerService(index driven.SemanticIndex, embedder driven.EmbeddingService, collection string) *IndexerService {
	if collection == "" {
		collection = domain.DefaultCollection
	}
	return &IndexerService{
		index:      index,
		embedder:   embedder,
		collection: collection,
	}
}

// Build indexes docs in order under ids "0", "1", ... and returns the
// display rows for all of them.
func (s *IndexerService) Build(
	ctx context.Context, docs []domain.Document,
) (driven.KnowledgeBase, *domain.KnowledgeBasePhase) {
	phase := domain.NewKnowledgeBasePhase()
	phase.TotalEntries = len(docs)
	for i, doc := range docs {
		phase.Entries = append(phase.Entries, domain.NewKnowledgeEntry(i+1, doc))
	}

	collection, err := s.populate(ctx, docs)
	if err != nil {
		logger.Warn("Knowledge base unavailable: %v", err)
		phase.Error = err.Error()
		return driven.KnowledgeBase{}, phase
	}

	logger.Info("Indexed %d entries into %q", len(docs), collection.Name())
	return driven.KnowledgeBase{Collection: collection, Embedder: s.embedder}, phase
}

func (s *IndexerService) populate(ctx context.Context, docs []domain.Document) (driven.Collection, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.index == nil {
		return nil, domain.ErrIndexUnavailable
	}

	collection, err := s.index.Collection(ctx, s.collection)
	if err != nil {
		return nil, fmt.Errorf("%w: open collection %q: %w", domain.ErrIndexUnavailable, s.collection, err)
	}
	// Entries belong to one run; persistent backends still hold the last one.
	if err := collection.Clear(ctx); err != nil {
		return nil, fmt.Errorf("%w: clear collection %q: %w", domain.ErrIndexUnavailable, s.collection, err)
	}

	for i, doc := range docs {
		id := strconv.Itoa(i)
		text, err := doc.CanonicalJSON()
		if err != nil {
			return nil, fmt.Errorf("%w: encode document %s: %w", domain.ErrIndexUnavailable, id, err)
		}
		embedding, err := s.embedder.Embed(ctx, string(text))
		if err != nil {
			return nil, fmt.Errorf("%w: embed document %s: %w", domain.ErrIndexUnavailable, id, err)
		}
		if err := collection.Add(ctx, id, string(text), embedding); err != nil {
			return nil, fmt.Errorf("%w: add document %s: %w", domain.ErrIndexUnavailable, id, err)
		}
		logger.Debug("Indexed document %s: %s", id, doc.Title)
	}
	return collection, nil
}
