package product

// Display defaults applied by Normalize to absent fields.
const (
	DefaultName     = "Unnamed Product"
	DefaultCategory = "Unknown"
	DefaultBrand    = "Unknown"

	// DefaultPlaceholderImage is used when no placeholder is configured.
	DefaultPlaceholderImage = "https://via.placeholder.com/300x300.png?text=No+Image"
)

// Product is a single catalog record as retrieved from the vector index.
// Records are read-only within the search core: the index owns them, and
// normalization only fills absent fields.
//
// Numeric fields are pointers so a genuine zero coming from the index is
// distinguishable from an absent field.
type Product struct {
	// Key is the internal index identity (the document key in the store).
	Key string

	ProductID    string
	ProductName  string
	CategoryName string
	Brand        string
	Description  string
	MainImage    string
	ImageURLs    string

	FinalPrice  *float64
	UnitPrice   *float64
	Rating      *float64
	ReviewCount *int
}

// Identity returns the deduplication key: ProductID when present,
// otherwise the internal index key.
func (p Product) Identity() string {
	if p.ProductID != "" {
		return p.ProductID
	}
	return p.Key
}

// Normalize returns a copy of p with display defaults filled in, so every
// record is safe to render. Present values are never overwritten, so a
// second pass changes nothing. placeholderImage may be empty, in which
// case DefaultPlaceholderImage is used.
func Normalize(p Product, placeholderImage string) Product {
	if placeholderImage == "" {
		placeholderImage = DefaultPlaceholderImage
	}

	if p.ProductID == "" {
		p.ProductID = p.Key
	}
	if p.ProductName == "" {
		p.ProductName = DefaultName
	}
	if p.CategoryName == "" {
		p.CategoryName = DefaultCategory
	}
	if p.Brand == "" {
		p.Brand = DefaultBrand
	}
	if p.MainImage == "" {
		p.MainImage = placeholderImage
	}
	if p.ImageURLs == "" {
		p.ImageURLs = placeholderImage
	}

	if p.FinalPrice == nil {
		p.FinalPrice = ptr(0.0)
	}
	if p.UnitPrice == nil {
		p.UnitPrice = ptr(0.0)
	}
	if p.Rating == nil {
		p.Rating = ptr(0.0)
	}
	if p.ReviewCount == nil {
		zero := 0
		p.ReviewCount = &zero
	}

	return p
}

func ptr(f float64) *float64 { return &f }
