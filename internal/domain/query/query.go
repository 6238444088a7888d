package query

import "strings"

// FilterSet is an optional predicate bundle applied to search candidates.
// Price bounds are carried as raw strings: malformed or absent bounds are
// no-ops, never errors.
type FilterSet struct {
	Category string
	Brand    string
	MinPrice string
	MaxPrice string
}

// IsEmpty reports whether no filter field is set.
func (f FilterSet) IsEmpty() bool {
	return f.Category == "" && f.Brand == "" && f.MinPrice == "" && f.MaxPrice == ""
}

// Enhanced is a single structured query produced by the enhancement
// adapter: a taxonomy category plus free-text search terms.
type Enhanced struct {
	Category    string `json:"category"`
	SearchTerms string `json:"search_terms"`
}

// EnhancedCount is the number of structured queries the enhancer always
// produces per user prompt.
const EnhancedCount = 3

// Taxonomy is the fixed category vocabulary the enhancer draws from.
var Taxonomy = []string{
	"clothing", "electronics", "home", "beauty", "sports",
	"footwear", "accessories", "books", "toys", "health",
	"kitchen", "furniture", "jewelry", "automotive", "outdoor",
}

// InTaxonomy reports whether category (case-folded, trimmed) is one of
// the fixed taxonomy entries.
func InTaxonomy(category string) bool {
	c := strings.ToLower(strings.TrimSpace(category))
	for _, t := range Taxonomy {
		if c == t {
			return true
		}
	}
	return false
}
