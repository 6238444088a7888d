package chi

import (
	"github.com/shopgrid/prodsearch/internal/domain/product"
	"github.com/shopgrid/prodsearch/internal/usecase/shopper"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned by the API.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUnauthorized     = "unauthorized"
)

// productJSON is the wire shape of a product record. Numeric fields are
// plain values: handlers normalize records before encoding, so absent
// fields have already been defaulted.
type productJSON struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	CategoryName string  `json:"category_name"`
	Brand        string  `json:"brand"`
	Description  string  `json:"description,omitempty"`
	MainImage    string  `json:"main_image"`
	ImageURLs    string  `json:"image_urls"`
	FinalPrice   float64 `json:"final_price"`
	UnitPrice    float64 `json:"unit_price"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"review_count"`
}

func productToJSON(p product.Product) productJSON {
	return productJSON{
		ProductID:    p.ProductID,
		ProductName:  p.ProductName,
		CategoryName: p.CategoryName,
		Brand:        p.Brand,
		Description:  p.Description,
		MainImage:    p.MainImage,
		ImageURLs:    p.ImageURLs,
		FinalPrice:   derefFloat(p.FinalPrice),
		UnitPrice:    derefFloat(p.UnitPrice),
		Rating:       derefFloat(p.Rating),
		ReviewCount:  derefInt(p.ReviewCount),
	}
}

func productsToJSON(products []product.Product) []productJSON {
	out := make([]productJSON, 0, len(products))
	for _, p := range products {
		out = append(out, productToJSON(p))
	}
	return out
}

// rowJSON is one category strip of the smart shopping response.
type rowJSON struct {
	Category    string        `json:"category"`
	SearchTerms string        `json:"search_terms"`
	Products    []productJSON `json:"products"`
}

func rowsToJSON(rows []shopper.Row) []rowJSON {
	out := make([]rowJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowJSON{
			Category:    r.Category,
			SearchTerms: r.SearchTerms,
			Products:    productsToJSON(r.Products),
		})
	}
	return out
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
