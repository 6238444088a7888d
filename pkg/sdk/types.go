package prodsearch

// Product is a catalog record as rendered by the API. Records are
// normalized server-side, so numeric fields are plain values and
// display fields are never empty.
type Product struct {
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

// SearchResponse is the result of Search and EnhancedSearch.
type SearchResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// Row is one category strip of the smart shopping response.
type Row struct {
	Category    string    `json:"category"`
	SearchTerms string    `json:"search_terms"`
	Products    []Product `json:"products"`
}

// EnhancedQuery is one structured query produced by Expand.
type EnhancedQuery struct {
	Category    string `json:"category"`
	SearchTerms string `json:"search_terms"`
}

// HealthStatus is the aggregated service health.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Sort orders accepted by Search.
const (
	SortRelevance = ""
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortRating    = "rating"
	SortName      = "name"
)

// SearchOptions narrows and shapes a Search call. The zero value
// means no filters, server-default result count, relevance order.
type SearchOptions struct {
	Category string
	Brand    string
	MinPrice string
	MaxPrice string
	K        int
	Sort     string
}
