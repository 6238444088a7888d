package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/shopgrid/prodsearch/internal/domain/query"
	"github.com/shopgrid/prodsearch/internal/logger"
	"github.com/shopgrid/prodsearch/internal/metrics"
)

// Validation errors for model output. Any of them routes the request to
// the fallback classifier, so the caller never sees an error.
var (
	errMalformed   = errors.New("completion is not a JSON array")
	errWrongLength = errors.New("completion must contain exactly 3 queries")
	errMissingKeys = errors.New("query object missing category or search_terms")
	errBadCategory = errors.New("category outside the fixed taxonomy")
)

const promptTemplate = `You are a smart shopping assistant. Analyze the user's shopping query and break it down into exactly 3 different product categories with enhanced search terms.

User Query: %q

Analyze this query and provide exactly 3 product categories that would be most relevant. For each category, provide enhanced search terms.

IMPORTANT: Respond with ONLY a valid JSON array. No other text, explanations, or formatting.

Format:
[
{"category": "clothing", "search_terms": "formal dress shirts men business professional"},
{"category": "clothing", "search_terms": "dress pants men office work formal"},
{"category": "footwear", "search_terms": "formal shoes men office leather dress"}
]

Categories should be chosen from: %s

Rules:
1. Always return exactly 3 objects
2. Make categories complementary to the user's scenario
3. Enhance search terms with relevant keywords, style, occasion
4. Keep categories diverse but relevant
5. ONLY return the JSON array, nothing else`

// Service turns a free-text shopping intent into exactly three
// structured (category, search terms) pairs. The model path degrades to
// a deterministic keyword classifier on any failure, so the 3-item
// contract always holds.
type Service struct {
	completer Completer
}

// New creates an enhancement service. completer may be nil, in which
// case every request uses the fallback classifier.
func New(completer Completer) *Service {
	return &Service{completer: completer}
}

// Expand returns exactly query.EnhancedCount structured queries for any
// prompt, falling back deterministically when the model is unavailable
// or returns invalid output.
func (s *Service) Expand(ctx context.Context, prompt string) []query.Enhanced {
	log := logger.FromContext(ctx)

	if s.completer == nil {
		metrics.EnhancerFallbackTotal.WithLabelValues("unreachable").Inc()
		metrics.EnhancerRequestsTotal.WithLabelValues("fallback").Inc()
		return Fallback(prompt)
	}

	raw, err := s.completer.Complete(ctx, buildPrompt(prompt))
	if err != nil {
		log.Warn("Enhancer unreachable, using fallback classifier", zap.Error(err))
		metrics.EnhancerFallbackTotal.WithLabelValues("unreachable").Inc()
		metrics.EnhancerRequestsTotal.WithLabelValues("fallback").Inc()
		return Fallback(prompt)
	}

	queries, err := parseEnhanced(raw)
	if err != nil {
		log.Warn("Enhancer output invalid, using fallback classifier",
			zap.Error(err),
			zap.String("completion", truncate(raw, 256)),
		)
		metrics.EnhancerFallbackTotal.WithLabelValues(fallbackReason(err)).Inc()
		metrics.EnhancerRequestsTotal.WithLabelValues("fallback").Inc()
		return Fallback(prompt)
	}

	metrics.EnhancerRequestsTotal.WithLabelValues("model").Inc()
	return queries
}

func buildPrompt(userPrompt string) string {
	return fmt.Sprintf(promptTemplate, userPrompt, strings.Join(query.Taxonomy, ", "))
}

// parseEnhanced validates a raw completion into exactly three enhanced
// queries. It is a pure function: all malformed-output handling is an
// explicit error return, not an exception path.
func parseEnhanced(raw string) ([]query.Enhanced, error) {
	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return nil, errMalformed
	}

	// Pointers distinguish a missing key from an empty value.
	var parsed []struct {
		Category    *string `json:"category"`
		SearchTerms *string `json:"search_terms"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformed, err)
	}

	if len(parsed) != query.EnhancedCount {
		return nil, fmt.Errorf("%w: got %d", errWrongLength, len(parsed))
	}

	queries := make([]query.Enhanced, 0, query.EnhancedCount)
	for _, q := range parsed {
		if q.Category == nil || q.SearchTerms == nil {
			return nil, errMissingKeys
		}
		if !query.InTaxonomy(*q.Category) {
			return nil, fmt.Errorf("%w: %q", errBadCategory, *q.Category)
		}
		queries = append(queries, query.Enhanced{
			Category:    strings.ToLower(strings.TrimSpace(*q.Category)),
			SearchTerms: strings.TrimSpace(*q.SearchTerms),
		})
	}

	return queries, nil
}

// stripCodeFences removes markdown fence markup models wrap JSON in.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, errWrongLength):
		return "wrong_length"
	case errors.Is(err, errMissingKeys):
		return "missing_keys"
	case errors.Is(err, errBadCategory):
		return "bad_category"
	default:
		return "malformed"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
