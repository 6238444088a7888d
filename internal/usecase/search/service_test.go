package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopgrid/prodsearch/internal/domain/product"
	"github.com/shopgrid/prodsearch/internal/domain/query"
)

// --- Mocks ---

type mockIndex struct {
	queryFn func(ctx context.Context, text string, k int) ([]product.Product, error)

	lastText string
	lastK    int
	calls    int
}

func (m *mockIndex) Query(ctx context.Context, text string, k int) ([]product.Product, error) {
	m.lastText = text
	m.lastK = k
	m.calls++
	if m.queryFn != nil {
		return m.queryFn(ctx, text, k)
	}
	return nil, nil
}

func poolOf(categories ...string) []product.Product {
	pool := make([]product.Product, 0, len(categories))
	for i, c := range categories {
		pool = append(pool, product.Product{
			Key:          fmt.Sprintf("prodsearch:%d", i),
			ProductID:    fmt.Sprintf("P%d", i),
			CategoryName: c,
		})
	}
	return pool
}

// --- Tests ---

func TestSearch_DefaultK(t *testing.T) {
	idx := &mockIndex{}
	svc := New(idx)

	svc.Search(context.Background(), "running shoes", query.FilterSet{}, 0)
	if idx.lastK != DefaultK {
		t.Errorf("expected default k %d, got %d", DefaultK, idx.lastK)
	}

	svc.Search(context.Background(), "running shoes", query.FilterSet{}, 5)
	if idx.lastK != 5 {
		t.Errorf("expected explicit k 5, got %d", idx.lastK)
	}
}

func TestSearch_IndexErrorYieldsEmptyResults(t *testing.T) {
	idx := &mockIndex{queryFn: func(context.Context, string, int) ([]product.Product, error) {
		return nil, errors.New("index gone")
	}}
	svc := New(idx)

	out := svc.Search(context.Background(), "anything", query.FilterSet{}, 10)
	if out == nil {
		t.Fatal("expected empty slice, not nil")
	}
	if len(out) != 0 {
		t.Fatalf("expected no results, got %d", len(out))
	}
}

func TestSearch_FiltersAndDedupes(t *testing.T) {
	idx := &mockIndex{queryFn: func(context.Context, string, int) ([]product.Product, error) {
		return []product.Product{
			{Key: "prodsearch:1", ProductID: "P1", CategoryName: "Footwear"},
			{Key: "prodsearch:2", ProductID: "P1", CategoryName: "Footwear"},
			{Key: "prodsearch:3", ProductID: "P2", CategoryName: "Clothing"},
		}, nil
	}}
	svc := New(idx)

	out := svc.Search(context.Background(), "shoes", query.FilterSet{Category: "footwear"}, 10)
	if len(out) != 1 || out[0].ProductID != "P1" {
		t.Fatalf("expected one deduped footwear product, got %v", out)
	}
}

func TestEnhancedSearch_BiasesQueryAndCapsFetch(t *testing.T) {
	idx := &mockIndex{}
	svc := New(idx)

	svc.EnhancedSearch(context.Background(), "dress shirts", "clothing", 6)
	if idx.lastText != "dress shirts clothing" {
		t.Errorf("expected category-biased query, got %q", idx.lastText)
	}
	if idx.lastK != 18 {
		t.Errorf("expected 3x over-fetch 18, got %d", idx.lastK)
	}

	svc.EnhancedSearch(context.Background(), "dress shirts", "clothing", 30)
	if idx.lastK != enhancedFetchCap {
		t.Errorf("expected fetch capped at %d, got %d", enhancedFetchCap, idx.lastK)
	}
}

func TestEnhancedSearch_TruncatesAndNormalizes(t *testing.T) {
	idx := &mockIndex{queryFn: func(context.Context, string, int) ([]product.Product, error) {
		return poolOf("clothing", "clothing", "clothing", "clothing"), nil
	}}
	svc := New(idx)

	out := svc.EnhancedSearch(context.Background(), "shirts", "clothing", 2)
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	for _, p := range out {
		if p.ProductName != product.DefaultName {
			t.Errorf("expected normalized record, got name %q", p.ProductName)
		}
	}
}

func TestEnhancedSearch_FiltersToCategory(t *testing.T) {
	idx := &mockIndex{queryFn: func(context.Context, string, int) ([]product.Product, error) {
		return poolOf("clothing", "footwear", "clothing"), nil
	}}
	svc := New(idx)

	out := svc.EnhancedSearch(context.Background(), "shirts", "clothing", 10)
	if len(out) != 2 {
		t.Fatalf("expected 2 clothing results, got %d", len(out))
	}
}

func TestEnhancedSearch_NoCategoryKeepsPool(t *testing.T) {
	idx := &mockIndex{queryFn: func(context.Context, string, int) ([]product.Product, error) {
		return poolOf("clothing", "footwear"), nil
	}}
	svc := New(idx)

	out := svc.EnhancedSearch(context.Background(), "shirts", "", 10)
	if len(out) != 2 {
		t.Fatalf("expected full pool without category filter, got %d", len(out))
	}
	if idx.lastText != "shirts" {
		t.Errorf("query should not be biased without a category, got %q", idx.lastText)
	}
}

func TestDiverseSearch_SingleQueryExactKeys(t *testing.T) {
	idx := &mockIndex{queryFn: func(context.Context, string, int) ([]product.Product, error) {
		return poolOf("clothing", "footwear", "electronics"), nil
	}}
	svc := New(idx)

	cats := []string{"clothing", "footwear", "kitchen"}
	buckets := svc.DiverseSearch(context.Background(), cats, "office outfit", 2)

	if idx.calls != 1 {
		t.Fatalf("expected a single index query, got %d", idx.calls)
	}
	if idx.lastK != len(cats)*2*diverseBucketBuffer {
		t.Errorf("unexpected fetch size %d", idx.lastK)
	}
	if len(buckets) != 3 {
		t.Fatalf("expected exactly the requested keys, got %d", len(buckets))
	}
	for _, c := range cats {
		if _, ok := buckets[c]; !ok {
			t.Errorf("missing bucket %q", c)
		}
	}
	if len(buckets["kitchen"]) != 0 {
		t.Errorf("kitchen should be empty, got %d", len(buckets["kitchen"]))
	}
	if len(buckets["clothing"]) != 1 || len(buckets["footwear"]) != 1 {
		t.Errorf("unexpected bucket fill: %v", buckets)
	}
}

func TestDiverseSearch_RespectsPerCategoryCap(t *testing.T) {
	idx := &mockIndex{queryFn: func(context.Context, string, int) ([]product.Product, error) {
		return poolOf("clothing", "clothing", "clothing", "clothing"), nil
	}}
	svc := New(idx)

	buckets := svc.DiverseSearch(context.Background(), []string{"clothing"}, "shirts", 2)
	if len(buckets["clothing"]) != 2 {
		t.Fatalf("expected bucket capped at 2, got %d", len(buckets["clothing"]))
	}
}

func TestDiverseSearch_NoCrossBucketDuplicates(t *testing.T) {
	// "mens clothing" matches both "clothing" and "mens clothing"
	// targets; each candidate must land in exactly one bucket.
	idx := &mockIndex{queryFn: func(context.Context, string, int) ([]product.Product, error) {
		return poolOf("mens clothing", "mens clothing"), nil
	}}
	svc := New(idx)

	buckets := svc.DiverseSearch(context.Background(), []string{"clothing", "mens clothing"}, "outfit", 6)

	seen := make(map[string]int)
	for _, bucket := range buckets {
		for _, p := range bucket {
			seen[p.ProductID]++
		}
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("product %q appears in %d buckets", id, n)
		}
	}
}

func TestDiverseSearch_OverflowFallsToLaterTarget(t *testing.T) {
	idx := &mockIndex{queryFn: func(context.Context, string, int) ([]product.Product, error) {
		return poolOf("mens clothing", "mens clothing"), nil
	}}
	svc := New(idx)

	buckets := svc.DiverseSearch(context.Background(), []string{"clothing", "mens clothing"}, "outfit", 1)
	if len(buckets["clothing"]) != 1 || len(buckets["mens clothing"]) != 1 {
		t.Fatalf("expected overflow into the later matching bucket, got %v", buckets)
	}
}

func TestDiverseSearch_IndexErrorYieldsEmptyBuckets(t *testing.T) {
	idx := &mockIndex{queryFn: func(context.Context, string, int) ([]product.Product, error) {
		return nil, errors.New("index gone")
	}}
	svc := New(idx)

	buckets := svc.DiverseSearch(context.Background(), []string{"clothing", "kitchen"}, "anything", 3)
	if len(buckets) != 2 {
		t.Fatalf("expected all keys present, got %d", len(buckets))
	}
	for c, b := range buckets {
		if len(b) != 0 {
			t.Errorf("bucket %q should be empty, got %d", c, len(b))
		}
	}
}

func TestDiverseSearch_NoCategories(t *testing.T) {
	idx := &mockIndex{}
	svc := New(idx)

	buckets := svc.DiverseSearch(context.Background(), nil, "anything", 3)
	if len(buckets) != 0 {
		t.Fatalf("expected empty map, got %d keys", len(buckets))
	}
	if idx.calls != 0 {
		t.Errorf("index should not be queried without categories")
	}
}
