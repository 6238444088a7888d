package catalog

import (
	"context"
	"testing"

	"github.com/shopgrid/prodsearch/internal/db"
	"github.com/shopgrid/prodsearch/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchKNNFn   func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	indexExistsFn func(ctx context.Context, name string) (bool, error)
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return true, nil
}

// mockEmbedder returns a fixed vector.
type mockEmbedder struct {
	vector []float32
	err    error

	lastText string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.lastText = text
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vector}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore, *mockEmbedder) {
	t.Helper()
	ms := &mockStore{}
	me := &mockEmbedder{vector: []float32{0.1, 0.2, 0.3}}
	repo := New(ms, me, "idx:products", "prodsearch:")
	return repo, ms, me
}

func entry(key string, fields map[string]string) db.SearchEntry {
	return db.SearchEntry{Key: key, Score: 0.9, Fields: fields}
}
