// Package prodsearch provides a Go client for the prodsearch HTTP API,
// a semantic product catalog search service.
//
// # Plain search with filters
//
//	client := prodsearch.New("http://localhost:8080",
//	    prodsearch.WithAPIKey("secret"),
//	)
//	resp, _ := client.Search(ctx, "running shoes", prodsearch.SearchOptions{
//	    Brand:    "Nike",
//	    MaxPrice: "120",
//	    Sort:     prodsearch.SortPriceLow,
//	})
//
// # Smart shopping
//
//	rows, _ := client.SmartShop(ctx, "I need an outfit for a beach vacation")
//	for _, row := range rows {
//	    fmt.Println(row.Category, len(row.Products))
//	}
//
// All methods return *APIError for non-2xx responses; check the Code
// field or use errors.As.
package prodsearch
