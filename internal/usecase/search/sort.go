package search

import (
	"sort"
	"strings"

	"github.com/shopgrid/prodsearch/internal/domain/product"
)

// Order names a result ordering. The zero value keeps relevance order.
type Order string

// Supported result orderings.
const (
	OrderRelevance Order = ""
	OrderPriceLow  Order = "price_low"
	OrderPriceHigh Order = "price_high"
	OrderRating    Order = "rating"
	OrderName      Order = "name"
)

// ParseOrder maps a raw sort parameter to an Order; unknown values keep
// relevance order.
func ParseOrder(s string) Order {
	switch Order(s) {
	case OrderPriceLow, OrderPriceHigh, OrderRating, OrderName:
		return Order(s)
	default:
		return OrderRelevance
	}
}

// SortProducts reorders products in place. Sorting is stable so records
// tied on the sort key keep their relevance order. Absent numeric fields
// sort as zero.
func SortProducts(products []product.Product, by Order) {
	switch by {
	case OrderPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return deref(products[i].FinalPrice) < deref(products[j].FinalPrice)
		})
	case OrderPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return deref(products[i].FinalPrice) > deref(products[j].FinalPrice)
		})
	case OrderRating:
		sort.SliceStable(products, func(i, j int) bool {
			return deref(products[i].Rating) > deref(products[j].Rating)
		})
	case OrderName:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].ProductName) < strings.ToLower(products[j].ProductName)
		})
	case OrderRelevance:
	}
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
