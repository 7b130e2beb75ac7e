package driven

import "context"

// SemanticIndex is a vector-similarity store holding named collections.
// This is an optional service - when nil, semantic retrieval is disabled.
type SemanticIndex interface {
	// Collection returns the named collection, creating it if needed.
	Collection(ctx context.Context, name string) (Collection, error)

	// Close releases resources.
	Close() error
}

// Collection is one named set of embedded texts.
type Collection interface {
	// Name returns the collection name.
	Name() string

	// Add stores text under id with its embedding. Adding an existing id
	// replaces the previous entry.
	Add(ctx context.Context, id, text string, embedding []float32) error

	// Query returns up to k entries ranked by similarity to embedding.
	Query(ctx context.Context, embedding []float32, k int) ([]IndexHit, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Clear removes every entry. The collection stays usable.
	Clear(ctx context.Context) error
}

// IndexHit represents a similarity search result.
type IndexHit struct {
	// ID is the entry identifier.
	ID string

	// Text is the stored text.
	Text string

	// Similarity is the cosine similarity score.
	Similarity float64
}

// KnowledgeBase bundles the handles semantic retrieval needs.
// Either handle may be nil when the index could not be built.
type KnowledgeBase struct {
	Collection Collection
	Embedder   EmbeddingService
}

// Available reports whether both handles are present.
func (kb KnowledgeBase) Available() bool {
	return kb.Collection != nil && kb.Embedder != nil
}
