package search

import (
	"context"

	"github.com/shopgrid/prodsearch/internal/domain/product"
)

// Index is the vector index provider consumed by the orchestrator: a
// single similarity query returning up to k product records ranked by
// descending relevance.
type Index interface {
	Query(ctx context.Context, text string, k int) ([]product.Product, error)
}
