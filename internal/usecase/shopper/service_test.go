package shopper

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopgrid/prodsearch/internal/domain/product"
	"github.com/shopgrid/prodsearch/internal/domain/query"
)

// --- Mocks ---

type mockEnhancer struct {
	queries []query.Enhanced
}

func (m *mockEnhancer) Expand(context.Context, string) []query.Enhanced {
	return m.queries
}

type mockSearcher struct {
	diverseResult  map[string][]product.Product
	enhancedResult map[string][]product.Product // keyed by category

	diverseCalls  int
	enhancedCalls []string // categories requested
}

func (m *mockSearcher) DiverseSearch(
	_ context.Context, categories []string, _ string, _ int,
) map[string][]product.Product {
	m.diverseCalls++
	out := make(map[string][]product.Product, len(categories))
	for _, c := range categories {
		out[c] = m.diverseResult[c]
	}
	return out
}

func (m *mockSearcher) EnhancedSearch(
	_ context.Context, _, category string, _ int,
) []product.Product {
	m.enhancedCalls = append(m.enhancedCalls, category)
	return m.enhancedResult[category]
}

func products(category string, n int) []product.Product {
	out := make([]product.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, product.Product{
			ProductID:    fmt.Sprintf("%s-%d", category, i),
			CategoryName: category,
		})
	}
	return out
}

func threeQueries() []query.Enhanced {
	return []query.Enhanced{
		{Category: "clothing", SearchTerms: "formal shirts office"},
		{Category: "footwear", SearchTerms: "dress shoes office"},
		{Category: "accessories", SearchTerms: "belts office"},
	}
}

// --- Tests ---

func TestShop_FullBucketsNoBackfill(t *testing.T) {
	search := &mockSearcher{diverseResult: map[string][]product.Product{
		"clothing":    products("clothing", 4),
		"footwear":    products("footwear", 3),
		"accessories": products("accessories", 5),
	}}
	svc := New(&mockEnhancer{queries: threeQueries()}, search, 6)

	rows := svc.Shop(context.Background(), "office outfit")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if search.diverseCalls != 1 {
		t.Errorf("expected one diverse search, got %d", search.diverseCalls)
	}
	if len(search.enhancedCalls) != 0 {
		t.Errorf("well-filled buckets should not backfill, got %v", search.enhancedCalls)
	}
	if rows[0].Category != "Clothing" {
		t.Errorf("expected title-cased category, got %q", rows[0].Category)
	}
	if rows[0].SearchTerms != "formal shirts office" {
		t.Errorf("unexpected search terms: %q", rows[0].SearchTerms)
	}
}

func TestShop_BackfillsThinBuckets(t *testing.T) {
	search := &mockSearcher{
		diverseResult: map[string][]product.Product{
			"clothing":    products("clothing", 2), // below threshold
			"footwear":    products("footwear", 3),
			"accessories": {},
		},
		enhancedResult: map[string][]product.Product{
			"clothing":    products("clothing-extra", 4),
			"accessories": products("accessories", 2),
		},
	}
	svc := New(&mockEnhancer{queries: threeQueries()}, search, 6)

	rows := svc.Shop(context.Background(), "office outfit")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if len(search.enhancedCalls) != 2 {
		t.Fatalf("expected 2 backfill searches, got %v", search.enhancedCalls)
	}
	if len(rows[0].Products) != 6 {
		t.Errorf("expected clothing merged to the per-category cap, got %d", len(rows[0].Products))
	}
}

func TestShop_BackfillSkipsDuplicates(t *testing.T) {
	shared := product.Product{ProductID: "SKU-1", CategoryName: "clothing"}
	search := &mockSearcher{
		diverseResult: map[string][]product.Product{
			"clothing": {shared},
		},
		enhancedResult: map[string][]product.Product{
			"clothing": {shared, {ProductID: "SKU-2", CategoryName: "clothing"}},
		},
	}
	svc := New(&mockEnhancer{queries: []query.Enhanced{
		{Category: "clothing", SearchTerms: "shirts"},
	}}, search, 6)

	rows := svc.Shop(context.Background(), "shirts")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if len(rows[0].Products) != 2 {
		t.Fatalf("expected duplicate collapsed to 2 products, got %d", len(rows[0].Products))
	}
}

func TestShop_OmitsEmptyRows(t *testing.T) {
	search := &mockSearcher{diverseResult: map[string][]product.Product{
		"clothing": products("clothing", 4),
	}}
	svc := New(&mockEnhancer{queries: threeQueries()}, search, 6)

	rows := svc.Shop(context.Background(), "office outfit")
	if len(rows) != 1 {
		t.Fatalf("expected only the non-empty row, got %d", len(rows))
	}
	if rows[0].Category != "Clothing" {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}

func TestShop_EmptySearchTermsUsePrompt(t *testing.T) {
	search := &mockSearcher{diverseResult: map[string][]product.Product{
		"clothing": products("clothing", 4),
	}}
	svc := New(&mockEnhancer{queries: []query.Enhanced{
		{Category: "clothing", SearchTerms: ""},
	}}, search, 6)

	rows := svc.Shop(context.Background(), "summer outfit")
	if len(rows) != 1 || rows[0].SearchTerms != "summer outfit" {
		t.Fatalf("expected raw prompt as search terms, got %+v", rows)
	}
}

func TestShop_GenericFallbackWhenAllEmpty(t *testing.T) {
	search := &mockSearcher{
		diverseResult: map[string][]product.Product{},
		enhancedResult: map[string][]product.Product{
			// Backfill per category returns nothing; the generic
			// search (empty category) returns a mixed pool.
			"": {
				{ProductID: "A1", CategoryName: "Footwear"},
				{ProductID: "B1", CategoryName: "Clothing"},
				{ProductID: "A2", CategoryName: "Footwear"},
			},
		},
	}
	svc := New(&mockEnhancer{queries: threeQueries()}, search, 6)

	rows := svc.Shop(context.Background(), "obscure request")
	if len(rows) != 2 {
		t.Fatalf("expected 2 grouped rows, got %d", len(rows))
	}
	// First-seen category order
	if rows[0].Category != "Footwear" || rows[1].Category != "Clothing" {
		t.Errorf("unexpected group order: %q, %q", rows[0].Category, rows[1].Category)
	}
	if len(rows[0].Products) != 2 {
		t.Errorf("expected 2 footwear products, got %d", len(rows[0].Products))
	}
}

func TestShop_NoResultsAnywhere(t *testing.T) {
	search := &mockSearcher{}
	svc := New(&mockEnhancer{queries: threeQueries()}, search, 6)

	rows := svc.Shop(context.Background(), "nothing matches")
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestTitleCase(t *testing.T) {
	if got := titleCase("mens clothing"); got != "Mens Clothing" {
		t.Errorf("expected Mens Clothing, got %q", got)
	}
	if got := titleCase("electronics"); got != "Electronics" {
		t.Errorf("expected Electronics, got %q", got)
	}
}
