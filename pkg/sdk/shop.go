package prodsearch

import "context"

type promptRequest struct {
	Prompt string `json:"prompt"`
}

// SmartShop expands a free-form shopping prompt and returns category
// rows with matched products. Rows without products are omitted.
func (c *Client) SmartShop(ctx context.Context, prompt string) ([]Row, error) {
	var resp struct {
		Rows []Row `json:"rows"`
	}
	if err := c.post(ctx, "/v1/search/smart", promptRequest{Prompt: prompt}, &resp); err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

// Expand turns a shopping prompt into exactly three structured queries
// without running a search.
func (c *Client) Expand(ctx context.Context, prompt string) ([]EnhancedQuery, error) {
	var resp struct {
		Queries []EnhancedQuery `json:"queries"`
	}
	if err := c.post(ctx, "/v1/expand", promptRequest{Prompt: prompt}, &resp); err != nil {
		return nil, err
	}
	return resp.Queries, nil
}
