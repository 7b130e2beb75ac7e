package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
)

// setupTestStore creates an in-memory store closed at test end.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore("")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func TestNewStore_InMemoryByDefault(t *testing.T) {
	store := setupTestStore(t)
	assert.Equal(t, InMemory, store.Path())
}

func TestNewStore_FileAndMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "index.db")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)
	c, err := store.Collection(ctx, "threat_intel")
	require.NoError(t, err)
	require.NoError(t, c.Add(ctx, "0", "persisted", []float32{1, 0}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	var versions int
	require.NoError(t, reopened.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 1, versions)

	c, err = reopened.Collection(ctx, "threat_intel")
	require.NoError(t, err)
	count, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_CollectionRejectsEmptyName(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Collection(context.Background(), "  ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCollection_AddUpserts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	c, err := store.Collection(ctx, "threat_intel")
	require.NoError(t, err)

	for i, text := range []string{"a", "b", "c"} {
		require.NoError(t, c.Add(ctx, string(rune('0'+i)), text, []float32{float32(i), 1}))
	}
	require.NoError(t, c.Add(ctx, "1", "b updated", []float32{1, 1}))

	count, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	hits, err := c.Query(ctx, []float32{1, 1}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "1", hits[0].ID)
	assert.Equal(t, "b updated", hits[0].Text)
}

func TestCollection_QueryRanking(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	c, err := store.Collection(ctx, "threat_intel")
	require.NoError(t, err)

	require.NoError(t, c.Add(ctx, "0", "ransomware", []float32{0, 1, 0}))
	require.NoError(t, c.Add(ctx, "1", "china", []float32{1, 0, 0}))
	require.NoError(t, c.Add(ctx, "2", "both", []float32{1, 1, 0}))
	require.NoError(t, c.Add(ctx, "3", "other", []float32{0, 0, 1}))

	hits, err := c.Query(ctx, []float32{1, 0, 0}, 3)

	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, []string{"1", "2", "0"}, []string{hits[0].ID, hits[1].ID, hits[2].ID})
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
}

func TestCollection_QueryEdgeCases(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	c, err := store.Collection(ctx, "threat_intel")
	require.NoError(t, err)

	hits, err := c.Query(ctx, []float32{1}, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)

	require.NoError(t, c.Add(ctx, "0", "only", []float32{1}))
	hits, err = c.Query(ctx, []float32{1}, 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestCollection_Isolation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	a, err := store.Collection(ctx, "a")
	require.NoError(t, err)
	b, err := store.Collection(ctx, "b")
	require.NoError(t, err)

	require.NoError(t, a.Add(ctx, "0", "in a", []float32{1}))
	require.NoError(t, b.Add(ctx, "0", "in b", []float32{1}))

	hits, err := b.Query(ctx, []float32{1}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "in b", hits[0].Text)
	assert.Equal(t, "b", b.Name())
}

func TestFloat32Roundtrip(t *testing.T) {
	in := []float32{0, 1.5, -2.25, 3.4028235e38}

	assert.Equal(t, in, bytesToFloat32Slice(float32SliceToBytes(in)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}

func TestCollection_Clear(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	c, err := store.Collection(ctx, "threat_intel")
	require.NoError(t, err)
	other, err := store.Collection(ctx, "other")
	require.NoError(t, err)

	require.NoError(t, c.Add(ctx, "0", "a", []float32{1, 0}))
	require.NoError(t, c.Add(ctx, "1", "b", []float32{0, 1}))
	require.NoError(t, other.Add(ctx, "0", "kept", []float32{1, 0}))

	require.NoError(t, c.Clear(ctx))

	count, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	count, err = other.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, c.Add(ctx, "0", "fresh", []float32{1, 0}))
	hits, err := c.Query(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "fresh", hits[0].Text)
}
