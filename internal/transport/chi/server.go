package chi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shopgrid/prodsearch/internal/domain/product"
	"github.com/shopgrid/prodsearch/internal/domain/query"
	healthuc "github.com/shopgrid/prodsearch/internal/usecase/health"
	searchuc "github.com/shopgrid/prodsearch/internal/usecase/search"
	shopperuc "github.com/shopgrid/prodsearch/internal/usecase/shopper"
)

// Enhancer expands a prompt into exactly three structured queries.
type Enhancer interface {
	Expand(ctx context.Context, prompt string) []query.Enhanced
}

// Server exposes the catalog search operations over HTTP.
type Server struct {
	search           *searchuc.Service
	enhance          Enhancer
	shopper          *shopperuc.Service
	health           *healthuc.Service
	placeholderImage string
	logger           *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	enhance Enhancer,
	shop *shopperuc.Service,
	health *healthuc.Service,
	placeholderImage string,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:           search,
		enhance:          enhance,
		shopper:          shop,
		health:           health,
		placeholderImage: placeholderImage,
		logger:           logger,
	}
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/search/enhanced", s.handleEnhancedSearch)
		r.Post("/search/diverse", s.handleDiverseSearch)
		r.Post("/search/smart", s.handleSmartSearch)
		r.Post("/expand", s.handleExpand)
	})
}

// handleSearch handles GET /v1/search: plain filtered search.
// Results are normalized before rendering so every record is
// display-safe.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query parameter q is required")
		return
	}

	filters := query.FilterSet{
		Category: r.URL.Query().Get("category"),
		Brand:    r.URL.Query().Get("brand"),
		MinPrice: r.URL.Query().Get("min_price"),
		MaxPrice: r.URL.Query().Get("max_price"),
	}

	var k int
	if err := runtime.BindQueryParameter("form", true, false, "k", r.URL.Query(), &k); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid k: "+err.Error())
		return
	}

	results := s.search.Search(r.Context(), q, filters, k)

	normalized := make([]product.Product, 0, len(results))
	for _, p := range results {
		normalized = append(normalized, product.Normalize(p, s.placeholderImage))
	}

	searchuc.SortProducts(normalized, searchuc.ParseOrder(r.URL.Query().Get("sort")))

	writeJSON(w, http.StatusOK, map[string]any{
		"products": productsToJSON(normalized),
		"total":    len(normalized),
	})
}

// handleEnhancedSearch handles GET /v1/search/enhanced.
func (s *Server) handleEnhancedSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query parameter q is required")
		return
	}

	var limit int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid limit: "+err.Error())
		return
	}

	results := s.search.EnhancedSearch(r.Context(), q, r.URL.Query().Get("category"), limit)

	writeJSON(w, http.StatusOK, map[string]any{
		"products": productsToJSON(results),
		"total":    len(results),
	})
}

// handleDiverseSearch handles POST /v1/search/diverse.
func (s *Server) handleDiverseSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Categories  []string `json:"categories"`
		Query       string   `json:"query"`
		PerCategory int      `json:"per_category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	}
	if len(req.Categories) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "at least one category is required")
		return
	}

	buckets := s.search.DiverseSearch(r.Context(), req.Categories, req.Query, req.PerCategory)

	out := make(map[string][]productJSON, len(buckets))
	for cat, products := range buckets {
		out[cat] = productsToJSON(products)
	}

	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

// handleSmartSearch handles POST /v1/search/smart.
func (s *Server) handleSmartSearch(w http.ResponseWriter, r *http.Request) {
	prompt, ok := s.decodePrompt(w, r)
	if !ok {
		return
	}

	rows := s.shopper.Shop(r.Context(), prompt)

	writeJSON(w, http.StatusOK, map[string]any{"rows": rowsToJSON(rows)})
}

// handleExpand handles POST /v1/expand.
func (s *Server) handleExpand(w http.ResponseWriter, r *http.Request) {
	prompt, ok := s.decodePrompt(w, r)
	if !ok {
		return
	}

	queries := s.enhance.Expand(r.Context(), prompt)

	writeJSON(w, http.StatusOK, map[string]any{"queries": queries})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func (s *Server) decodePrompt(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return "", false
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "prompt is required")
		return "", false
	}
	return req.Prompt, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
