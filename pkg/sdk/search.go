package prodsearch

import (
	"context"
	"net/url"
	"strconv"
)

// Search runs a filtered semantic search over the catalog.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	if opts.Category != "" {
		params.Set("category", opts.Category)
	}
	if opts.Brand != "" {
		params.Set("brand", opts.Brand)
	}
	if opts.MinPrice != "" {
		params.Set("min_price", opts.MinPrice)
	}
	if opts.MaxPrice != "" {
		params.Set("max_price", opts.MaxPrice)
	}
	if opts.K > 0 {
		params.Set("k", strconv.Itoa(opts.K))
	}
	if opts.Sort != "" {
		params.Set("sort", opts.Sort)
	}

	var resp SearchResponse
	if err := c.get(ctx, "/v1/search", params, &resp); err != nil {
		return SearchResponse{}, err
	}
	return resp, nil
}

// EnhancedSearch runs a category-biased search. Pass an empty category
// to search without a bias. limit 0 uses the server default.
func (c *Client) EnhancedSearch(ctx context.Context, query, category string, limit int) (SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	if category != "" {
		params.Set("category", category)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var resp SearchResponse
	if err := c.get(ctx, "/v1/search/enhanced", params, &resp); err != nil {
		return SearchResponse{}, err
	}
	return resp, nil
}

// DiverseSearch retrieves one product bucket per requested category
// from a single search. Every requested category is present in the
// result, possibly with an empty bucket. perCategory 0 uses the
// server default.
func (c *Client) DiverseSearch(ctx context.Context, categories []string, query string, perCategory int) (map[string][]Product, error) {
	req := struct {
		Categories  []string `json:"categories"`
		Query       string   `json:"query"`
		PerCategory int      `json:"per_category,omitempty"`
	}{Categories: categories, Query: query, PerCategory: perCategory}

	var resp struct {
		Categories map[string][]Product `json:"categories"`
	}
	if err := c.post(ctx, "/v1/search/diverse", req, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}
