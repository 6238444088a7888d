package enhance

import (
	"strings"

	"github.com/shopgrid/prodsearch/internal/domain/query"
)

// rule maps prompt trigger tokens to a fixed triple of enhanced queries.
type rule struct {
	triggers []string
	queries  [query.EnhancedCount]query.Enhanced
}

// Scenario rules, checked in order. First rule with a trigger present in
// the lowercased prompt wins.
var scenarioRules = []rule{
	{
		triggers: []string{"office", "work", "professional", "business", "formal", "interview", "meeting"},
		queries: [3]query.Enhanced{
			{Category: "clothing", SearchTerms: "formal shirts professional business office men women"},
			{Category: "clothing", SearchTerms: "dress pants formal office work professional trousers"},
			{Category: "footwear", SearchTerms: "formal shoes office dress leather professional"},
		},
	},
	{
		triggers: []string{"casual", "weekend", "relaxed", "comfortable", "leisure", "vacation"},
		queries: [3]query.Enhanced{
			{Category: "clothing", SearchTerms: "casual shirts comfortable weekend t-shirts tops"},
			{Category: "clothing", SearchTerms: "jeans casual pants comfortable denim"},
			{Category: "footwear", SearchTerms: "casual shoes sneakers comfortable walking"},
		},
	},
	{
		triggers: []string{"electronics", "tech", "gadget", "device", "computer", "phone", "laptop"},
		queries: [3]query.Enhanced{
			{Category: "electronics", SearchTerms: "smartphones mobile phones latest technology"},
			{Category: "electronics", SearchTerms: "laptops computers portable notebook"},
			{Category: "electronics", SearchTerms: "headphones audio accessories wireless bluetooth"},
		},
	},
	{
		triggers: []string{"home", "kitchen", "house", "furniture", "apartment", "living"},
		queries: [3]query.Enhanced{
			{Category: "kitchen", SearchTerms: "kitchen appliances cooking utensils tools"},
			{Category: "home", SearchTerms: "furniture home decor living room bedroom"},
			{Category: "home", SearchTerms: "storage organization home accessories"},
		},
	},
	{
		triggers: []string{"gym", "fitness", "workout", "sports", "exercise", "training"},
		queries: [3]query.Enhanced{
			{Category: "sports", SearchTerms: "fitness equipment workout gear exercise"},
			{Category: "clothing", SearchTerms: "sportswear athletic clothing gym wear"},
			{Category: "sports", SearchTerms: "exercise accessories fitness gear equipment"},
		},
	},
	{
		triggers: []string{"beauty", "skincare", "makeup", "health", "personal care"},
		queries: [3]query.Enhanced{
			{Category: "beauty", SearchTerms: "skincare products face care moisturizer"},
			{Category: "beauty", SearchTerms: "makeup cosmetics beauty products"},
			{Category: "health", SearchTerms: "personal care health wellness products"},
		},
	},
	{
		triggers: []string{"student", "college", "university", "study", "school"},
		queries: [3]query.Enhanced{
			{Category: "electronics", SearchTerms: "laptops computers student notebook"},
			{Category: "books", SearchTerms: "textbooks educational books study materials"},
			{Category: "accessories", SearchTerms: "backpacks student accessories school supplies"},
		},
	},
	{
		triggers: []string{"travel", "vacation", "trip", "journey", "luggage"},
		queries: [3]query.Enhanced{
			{Category: "accessories", SearchTerms: "luggage travel bags suitcase backpack"},
			{Category: "clothing", SearchTerms: "travel clothing comfortable vacation wear"},
			{Category: "electronics", SearchTerms: "travel accessories gadgets portable chargers"},
		},
	},
}

// Product-type token groups for the secondary generic classifier.
var (
	clothingWords = []string{"shirt", "clothing", "dress", "wear", "outfit", "fashion"}
	techWords     = []string{"phone", "computer", "laptop", "tablet", "tech"}
	kitchenWords  = []string{"kitchen", "cooking", "food", "recipe"}
)

// Fallback is the deterministic, network-free classifier satisfying the
// enhancer's 3-item contract for any prompt.
func Fallback(prompt string) []query.Enhanced {
	lower := strings.ToLower(prompt)

	for _, r := range scenarioRules {
		if containsAny(lower, r.triggers) {
			return r.queries[:]
		}
	}

	// No scenario matched: sniff for product-type tokens.
	switch {
	case containsAny(lower, clothingWords):
		return []query.Enhanced{
			{Category: "clothing", SearchTerms: prompt + " clothing wear fashion"},
			{Category: "footwear", SearchTerms: prompt + " shoes footwear"},
			{Category: "accessories", SearchTerms: prompt + " accessories fashion"},
		}
	case containsAny(lower, techWords):
		return []query.Enhanced{
			{Category: "electronics", SearchTerms: prompt + " electronics technology"},
			{Category: "electronics", SearchTerms: prompt + " accessories cables chargers"},
			{Category: "electronics", SearchTerms: prompt + " devices gadgets"},
		}
	case containsAny(lower, kitchenWords):
		return []query.Enhanced{
			{Category: "kitchen", SearchTerms: prompt + " kitchen cooking utensils"},
			{Category: "home", SearchTerms: prompt + " home appliances"},
			{Category: "kitchen", SearchTerms: prompt + " food storage containers"},
		}
	}

	return []query.Enhanced{
		{Category: "clothing", SearchTerms: prompt + " clothing fashion"},
		{Category: "electronics", SearchTerms: prompt + " electronics technology"},
		{Category: "home", SearchTerms: prompt + " home accessories"},
	}
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
