package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/shopgrid/prodsearch/internal/domain/product"
	"github.com/shopgrid/prodsearch/internal/domain/query"
	"github.com/shopgrid/prodsearch/internal/logger"
	"github.com/shopgrid/prodsearch/internal/metrics"
)

// Over-fetch and capping constants. Enhanced search retrieves 3x the
// requested results so post-retrieval filtering still fills the page,
// capped to bound similarity computation cost.
const (
	DefaultK            = 20
	DefaultPerCategory  = 6
	enhancedOverFetch   = 3
	enhancedFetchCap    = 50
	diverseBucketBuffer = 3
)

// Service is the search orchestrator: it composes the vector index,
// filter engine, deduplicator, and normalizer into the public search
// operations. Every operation fails open: an index error degrades to
// zero results, never an error to the caller.
type Service struct {
	index            Index
	defaultK         int
	perCategory      int
	placeholderImage string
}

// New creates a search service over the given vector index provider.
func New(index Index) *Service {
	return &Service{
		index:       index,
		defaultK:    DefaultK,
		perCategory: DefaultPerCategory,
	}
}

// WithDefaults overrides the default candidate count and per-category
// bucket cap (non-positive values keep the current setting).
func (s *Service) WithDefaults(defaultK, perCategory int) *Service {
	if defaultK > 0 {
		s.defaultK = defaultK
	}
	if perCategory > 0 {
		s.perCategory = perCategory
	}
	return s
}

// WithPlaceholderImage sets the image URL substituted for records
// without one.
func (s *Service) WithPlaceholderImage(url string) *Service {
	s.placeholderImage = url
	return s
}

// Search runs a plain filtered search: over-fetch k candidates, apply
// the filter set, collapse duplicates. Results are not normalized here;
// display callers normalize separately.
func (s *Service) Search(
	ctx context.Context, searchQuery string, filters query.FilterSet, k int,
) []product.Product {
	if k <= 0 {
		k = s.defaultK
	}

	pool, err := s.index.Query(ctx, searchQuery, k)
	if err != nil {
		s.reportIndexError(ctx, "search", err)
		return []product.Product{}
	}

	out := dedupe(applyFilters(pool, filters))

	metrics.SearchRequestsTotal.WithLabelValues("search", "success").Inc()
	metrics.SearchResultsReturned.WithLabelValues("search").Observe(float64(len(out)))
	return out
}

// EnhancedSearch biases the similarity query with a category hint,
// filters to the category, and returns up to maxResults normalized
// records.
func (s *Service) EnhancedSearch(
	ctx context.Context, searchQuery, category string, maxResults int,
) []product.Product {
	if maxResults <= 0 {
		maxResults = s.perCategory
	}

	k := min(maxResults*enhancedOverFetch, enhancedFetchCap)

	biased := searchQuery
	if category != "" {
		biased = searchQuery + " " + category
	}

	pool, err := s.index.Query(ctx, biased, k)
	if err != nil {
		s.reportIndexError(ctx, "enhanced", err)
		return []product.Product{}
	}

	if category != "" {
		filtered := pool[:0]
		for _, p := range pool {
			if matchesCategory(p.CategoryName, category) {
				filtered = append(filtered, p)
			}
		}
		pool = filtered
	}

	pool = dedupe(pool)

	out := make([]product.Product, 0, min(len(pool), maxResults))
	for _, p := range pool {
		if len(out) == maxResults {
			break
		}
		out = append(out, product.Normalize(p, s.placeholderImage))
	}

	metrics.SearchRequestsTotal.WithLabelValues("enhanced", "success").Inc()
	metrics.SearchResultsReturned.WithLabelValues("enhanced").Observe(float64(len(out)))
	return out
}

// DiverseSearch issues a single similarity query and partitions the
// candidate pool across the target categories. Each candidate goes to
// the first category (in caller-supplied order) it matches that still
// has room; candidates matching no category are dropped. One query
// round-trip is far cheaper than one per category; the 3x buffer
// mitigates bucket starvation when the query's neighborhood is skewed
// toward one category. Buckets may come back under-filled or empty;
// backfill is the caller's concern.
//
// The returned map always holds exactly the requested category keys.
func (s *Service) DiverseSearch(
	ctx context.Context, categories []string, searchQuery string, perCategory int,
) map[string][]product.Product {
	if perCategory <= 0 {
		perCategory = s.perCategory
	}

	buckets := make(map[string][]product.Product, len(categories))
	for _, c := range categories {
		buckets[c] = []product.Product{}
	}
	if len(categories) == 0 {
		return buckets
	}

	k := len(categories) * perCategory * diverseBucketBuffer

	pool, err := s.index.Query(ctx, searchQuery, k)
	if err != nil {
		s.reportIndexError(ctx, "diverse", err)
		return buckets
	}

	assigned := 0
	for _, p := range dedupe(pool) {
		for _, target := range categories {
			if !matchesCategoryLoose(p.CategoryName, target) {
				continue
			}
			if len(buckets[target]) < perCategory {
				buckets[target] = append(buckets[target], product.Normalize(p, s.placeholderImage))
				assigned++
				break
			}
			// First match is full: the candidate may still land in a
			// later matching category.
		}
	}

	metrics.SearchRequestsTotal.WithLabelValues("diverse", "success").Inc()
	metrics.SearchResultsReturned.WithLabelValues("diverse").Observe(float64(assigned))
	return buckets
}

func (s *Service) reportIndexError(ctx context.Context, op string, err error) {
	logger.FromContext(ctx).Warn("Index query failed, returning empty results",
		zap.String("op", op),
		zap.Error(err),
	)
	metrics.SearchRequestsTotal.WithLabelValues(op, "error").Inc()
}
