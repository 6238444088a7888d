package search

import "github.com/shopgrid/prodsearch/internal/domain/product"

// dedupe collapses records sharing an identity key, first occurrence
// wins, order preserved.
func dedupe(products []product.Product) []product.Product {
	seen := make(map[string]struct{}, len(products))
	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		key := p.Identity()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
