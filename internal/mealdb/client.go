// Package mealdb is a thin client for the public TheMealDB recipe API.
// Responses are returned as raw JSON payloads so handlers can pass them
// through verbatim.
package mealdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const requestTimeout = 8 * time.Second

// Client calls the upstream recipe catalog over HTTP with a bounded
// timeout. A timeout surfaces as a normal error, never a hang.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given API base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/",
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Random fetches a random recipe.
func (c *Client) Random(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "random.php")
}

// ByID fetches a single recipe by its catalog id.
func (c *Client) ByID(ctx context.Context, id int64) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("lookup.php?i=%d", id))
}

// ByCategory fetches the recipes in a category.
func (c *Client) ByCategory(ctx context.Context, category string) ([]byte, error) {
	return c.get(ctx, "filter.php?c="+url.QueryEscape(category))
}

// ByArea fetches the recipes from a cuisine area.
func (c *Client) ByArea(ctx context.Context, area string) ([]byte, error) {
	return c.get(ctx, "filter.php?a="+url.QueryEscape(area))
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call recipe api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recipe api returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read recipe api response: %w", err)
	}
	return body, nil
}
