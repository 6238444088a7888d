package catalog

import (
	"context"
	"fmt"

	"github.com/shopgrid/prodsearch/internal/db"
	"github.com/shopgrid/prodsearch/internal/domain"
	"github.com/shopgrid/prodsearch/internal/domain/product"
)

// store is the consumer interface for catalog retrieval (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo is the vector index provider: it turns free text into ranked
// product records from the pre-built FT index. The index is read-only
// here; an external loader owns its schema and contents.
type Repo struct {
	store  store
	embed  domain.Embedder
	index  string
	prefix string
}

// New creates a catalog repository over the named pre-built index.
func New(s store, embed domain.Embedder, indexName, keyPrefix string) *Repo {
	return &Repo{store: s, embed: embed, index: indexName, prefix: keyPrefix}
}

// EnsureIndex verifies the pre-built product index is present.
// Called once at startup; a missing index is a deployment error.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.index)
	if err != nil {
		return fmt.Errorf("probe index %s: %w", r.index, err)
	}
	if !exists {
		return fmt.Errorf("index %s: %w", r.index, domain.ErrIndexNotFound)
	}
	return nil
}

// Query embeds text and returns up to k product records ranked by
// descending similarity.
func (r *Repo) Query(ctx context.Context, text string, k int) ([]product.Product, error) {
	embResult, err := r.embed.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.index,
		Vector:       embResult.Embedding,
		K:            k,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", r.index, err)
	}

	return parseProducts(sr, r.prefix), nil
}
