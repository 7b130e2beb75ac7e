package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
)

// Ensure SemanticIndex implements the interface.
var _ driven.SemanticIndex = (*SemanticIndex)(nil)

// SemanticIndex is an in-process implementation of driven.SemanticIndex.
// Collections live for the lifetime of the index.
type SemanticIndex struct {
	mu          sync.Mutex
	collections map[string]*Collection
}

// NewSemanticIndex creates an empty in-memory index.
func NewSemanticIndex() *SemanticIndex {
	return &SemanticIndex{
		collections: make(map[string]*Collection),
	}
}

// Collection returns the named collection, creating it if needed.
func (s *SemanticIndex) Collection(_ context.Context, name string) (driven.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		c = newCollection(name)
		s.collections[name] = c
	}
	return c, nil
}

// Close releases all collections.
func (s *SemanticIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = make(map[string]*Collection)
	return nil
}

type entry struct {
	id        string
	text      string
	embedding []float32
}

// Collection is an in-memory driven.Collection ranked by brute-force cosine similarity.
type Collection struct {
	name    string
	mu      sync.RWMutex
	order   []string
	entries map[string]entry
}

func newCollection(name string) *Collection {
	return &Collection{
		name:    name,
		entries: make(map[string]entry),
	}
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Add stores or replaces an entry.
func (c *Collection) Add(_ context.Context, id, text string, embedding []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[id]; !exists {
		c.order = append(c.order, id)
	}
	vec := make([]float32, len(embedding))
	copy(vec, embedding)
	c.entries[id] = entry{id: id, text: text, embedding: vec}
	return nil
}

// Query returns up to k entries by descending similarity.
// Ties keep insertion order.
func (c *Collection) Query(_ context.Context, embedding []float32, k int) ([]driven.IndexHit, error) {
	if k <= 0 {
		return []driven.IndexHit{}, nil
	}
	c.mu.RLock()
	hits := make([]driven.IndexHit, 0, len(c.order))
	for _, id := range c.order {
		e := c.entries[id]
		hits = append(hits, driven.IndexHit{
			ID:         e.id,
			Text:       e.text,
			Similarity: domain.CosineSimilarity(embedding, e.embedding),
		})
	}
	c.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Clear drops every entry.
func (c *Collection) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = nil
	c.entries = make(map[string]entry)
	return nil
}

// Count returns the number of stored entries.
func (c *Collection) Count(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries), nil
}
