package shopper

import (
	"context"

	"github.com/shopgrid/prodsearch/internal/domain/product"
	"github.com/shopgrid/prodsearch/internal/domain/query"
)

// Enhancer expands a shopping prompt into exactly three structured queries.
type Enhancer interface {
	Expand(ctx context.Context, prompt string) []query.Enhanced
}

// Searcher is the subset of the search orchestrator the shopper flow uses.
type Searcher interface {
	DiverseSearch(
		ctx context.Context, categories []string, searchQuery string, perCategory int,
	) map[string][]product.Product
	EnhancedSearch(
		ctx context.Context, searchQuery, category string, maxResults int,
	) []product.Product
}
