package catalog

import (
	"strconv"
	"strings"

	"github.com/shopgrid/prodsearch/internal/db"
	"github.com/shopgrid/prodsearch/internal/domain/product"
)

// Product hash field names as written by the index loader.
const (
	fieldProductID   = "product_id"
	fieldProductName = "product_name"
	fieldCategory    = "category_name"
	fieldBrand       = "brand"
	fieldDescription = "description"
	fieldMainImage   = "main_image"
	fieldImageURLs   = "image_urls"
	fieldFinalPrice  = "final_price"
	fieldUnitPrice   = "unit_price"
	fieldRating      = "rating"
	fieldReviewCount = "review_count"
)

var returnFields = []string{
	fieldProductID, fieldProductName, fieldCategory, fieldBrand,
	fieldDescription, fieldMainImage, fieldImageURLs,
	fieldFinalPrice, fieldUnitPrice, fieldRating, fieldReviewCount,
	"__vector_score",
}

// parseProducts converts db.SearchResult entries into product records,
// preserving the index ranking order.
func parseProducts(sr *db.SearchResult, keyPrefix string) []product.Product {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	products := make([]product.Product, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		products = append(products, parseEntry(entry, keyPrefix))
	}
	return products
}

// parseEntry maps raw hash fields onto a Product. Missing fields stay
// absent (empty strings, nil numerics) so the normalizer can tell them
// apart from genuine values; a field that fails numeric coercion is
// treated as absent rather than an error.
func parseEntry(entry db.SearchEntry, keyPrefix string) product.Product {
	f := entry.Fields

	return product.Product{
		Key:          strings.TrimPrefix(entry.Key, keyPrefix),
		ProductID:    f[fieldProductID],
		ProductName:  f[fieldProductName],
		CategoryName: f[fieldCategory],
		Brand:        f[fieldBrand],
		Description:  f[fieldDescription],
		MainImage:    f[fieldMainImage],
		ImageURLs:    f[fieldImageURLs],
		FinalPrice:   parseFloat(f[fieldFinalPrice]),
		UnitPrice:    parseFloat(f[fieldUnitPrice]),
		Rating:       parseFloat(f[fieldRating]),
		ReviewCount:  parseInt(f[fieldReviewCount]),
	}
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
