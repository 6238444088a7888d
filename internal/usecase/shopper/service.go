package shopper

import (
	"context"
	"strings"
	"unicode"

	"github.com/shopgrid/prodsearch/internal/domain/product"
	"github.com/shopgrid/prodsearch/internal/metrics"
)

// Thresholds for the backfill strategy: a bucket with fewer than
// backfillBelow products gets a targeted per-category search, and a
// fully empty result set falls back to one generic search.
const (
	backfillBelow = 3
	genericLimit  = 12
)

// Row is one category strip of the smart shopping response.
type Row struct {
	Category    string
	SearchTerms string
	Products    []product.Product
}

// Service composes the enhancer and the search orchestrator into the
// smart shopping flow: expand the prompt, run one diversified search,
// then backfill thin buckets per category. The diversified search
// itself never re-queries; backfill happens here.
type Service struct {
	enhancer    Enhancer
	search      Searcher
	perCategory int
}

// New creates a shopper service.
func New(enhancer Enhancer, search Searcher, perCategory int) *Service {
	if perCategory <= 0 {
		perCategory = 6
	}
	return &Service{enhancer: enhancer, search: search, perCategory: perCategory}
}

// Shop returns ordered category rows of products for a free-text
// shopping prompt. Rows with no products are omitted; when every bucket
// comes back empty, one generic search grouped by category is returned
// instead.
func (s *Service) Shop(ctx context.Context, prompt string) []Row {
	queries := s.enhancer.Expand(ctx, prompt)

	categories := make([]string, 0, len(queries))
	for _, q := range queries {
		categories = append(categories, q.Category)
	}

	buckets := s.search.DiverseSearch(ctx, categories, prompt, s.perCategory)

	rows := make([]Row, 0, len(queries))
	for _, q := range queries {
		terms := q.SearchTerms
		if terms == "" {
			// Tolerate an empty expansion by searching the raw prompt.
			terms = prompt
		}

		products := append([]product.Product(nil), buckets[q.Category]...)
		if len(products) < backfillBelow {
			products = s.backfill(ctx, products, terms, q.Category)
		}

		if len(products) > 0 {
			rows = append(rows, Row{
				Category:    titleCase(q.Category),
				SearchTerms: terms,
				Products:    products,
			})
		}
	}

	if len(rows) == 0 {
		rows = s.genericRows(ctx, prompt)
	}

	metrics.SearchRequestsTotal.WithLabelValues("smart", "success").Inc()
	return rows
}

// backfill merges a targeted per-category search into an under-filled
// bucket, skipping duplicate identity keys and capping at the
// per-category limit.
func (s *Service) backfill(
	ctx context.Context, products []product.Product, terms, category string,
) []product.Product {
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		seen[p.Identity()] = struct{}{}
	}

	for _, p := range s.search.EnhancedSearch(ctx, terms, category, s.perCategory) {
		if len(products) >= s.perCategory {
			break
		}
		if _, ok := seen[p.Identity()]; ok {
			continue
		}
		seen[p.Identity()] = struct{}{}
		products = append(products, p)
	}

	return products
}

// genericRows groups one broad search by record category, preserving
// first-seen category order.
func (s *Service) genericRows(ctx context.Context, prompt string) []Row {
	generic := s.search.EnhancedSearch(ctx, prompt, "", genericLimit)
	if len(generic) == 0 {
		return []Row{}
	}

	order := make([]string, 0, len(generic))
	groups := make(map[string][]product.Product)
	for _, p := range generic {
		cat := p.CategoryName
		if _, ok := groups[cat]; !ok {
			order = append(order, cat)
		}
		if len(groups[cat]) < s.perCategory {
			groups[cat] = append(groups[cat], p)
		}
	}

	rows := make([]Row, 0, len(order))
	for _, cat := range order {
		rows = append(rows, Row{Category: cat, SearchTerms: prompt, Products: groups[cat]})
	}
	return rows
}

// titleCase capitalizes the first letter of each word for display.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
