package search

import (
	"strconv"
	"strings"

	"github.com/shopgrid/prodsearch/internal/domain/product"
	"github.com/shopgrid/prodsearch/internal/domain/query"
)

// applyFilters returns the order-preserving subsequence of products
// passing every set predicate. Absent filter fields are permissive, so
// an empty FilterSet is the identity.
func applyFilters(products []product.Product, filters query.FilterSet) []product.Product {
	if filters.IsEmpty() {
		return products
	}

	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if matchesFilters(p, filters) {
			out = append(out, p)
		}
	}
	return out
}

func matchesFilters(p product.Product, filters query.FilterSet) bool {
	if filters.Category != "" && !matchesCategory(p.CategoryName, filters.Category) {
		return false
	}

	if filters.Brand != "" && !strings.EqualFold(strings.TrimSpace(filters.Brand), strings.TrimSpace(p.Brand)) {
		return false
	}

	// Price bounds apply independently and inclusively. An absent price
	// is coerced to 0, so a positive min_price excludes unpriced records.
	// A malformed bound is a no-op.
	price := 0.0
	if p.FinalPrice != nil {
		price = *p.FinalPrice
	}
	if minPrice, ok := parseBound(filters.MinPrice); ok && price < minPrice {
		return false
	}
	if maxPrice, ok := parseBound(filters.MaxPrice); ok && price > maxPrice {
		return false
	}

	return true
}

func parseBound(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// matchesCategory applies bidirectional containment: the filter category
// may name either a broader or a narrower grouping than the record's.
// An empty record category is a substring of any filter and therefore
// always matches; normalization to "Unknown" happens after filtering.
func matchesCategory(productCategory, target string) bool {
	pc := fold(productCategory)
	tc := fold(target)
	if tc == "" {
		return true
	}
	return strings.Contains(pc, tc) || strings.Contains(tc, pc)
}

// matchesCategoryLoose extends matchesCategory with a token fallback:
// any whitespace-delimited token of the target contained in the record's
// category counts as a match ("home & kitchen" vs "kitchen appliances").
func matchesCategoryLoose(productCategory, target string) bool {
	if matchesCategory(productCategory, target) {
		return true
	}
	pc := fold(productCategory)
	for _, tok := range strings.Fields(fold(target)) {
		if strings.Contains(pc, tok) {
			return true
		}
	}
	return false
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
