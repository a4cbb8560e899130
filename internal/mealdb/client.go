package mealdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned by Lookup when the API has no meal for the id.
var ErrNotFound = errors.New("meal not found")

// Provider defines the read operations the UI and CLI need.
// This interface is implemented by *Client and can be used for testing.
type Provider interface {
	Categories(ctx context.Context) ([]Category, error)
	MealsByCategory(ctx context.Context, category string) ([]Meal, error)
	Search(ctx context.Context, term string) ([]MealDetail, error)
	Lookup(ctx context.Context, id string) (*MealDetail, error)
}

// Ensure Client implements Provider at compile time.
var _ Provider = (*Client)(nil)

// Client talks to TheMealDB HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	group     singleflight.Group
}

const (
	DefaultBaseURL   = "https://www.themealdb.com/api/json/v1/1"
	defaultUserAgent = "mealmarket/0.1"
	defaultTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL. An empty base uses
// DefaultBaseURL; a non-positive timeout uses 10s.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// Categories lists every meal category.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload categoriesResponse
	if err := c.get(ctx, "list.php", url.Values{"c": {"list"}}, &payload); err != nil {
		return nil, err
	}
	return payload.Meals, nil
}

// MealsByCategory lists meal summaries in a category.
func (c *Client) MealsByCategory(ctx context.Context, category string) ([]Meal, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fmt.Errorf("category required")
	}
	var payload mealsResponse
	if err := c.get(ctx, "filter.php", url.Values{"c": {category}}, &payload); err != nil {
		return nil, err
	}
	for i := range payload.Meals {
		if payload.Meals[i].Category == "" {
			payload.Meals[i].Category = category
		}
	}
	return payload.Meals, nil
}

// Search finds meals whose name matches term.
func (c *Client) Search(ctx context.Context, term string) ([]MealDetail, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload detailsResponse
	if err := c.get(ctx, "search.php", url.Values{"s": {term}}, &payload); err != nil {
		return nil, err
	}
	return payload.Meals, nil
}

// Lookup fetches one meal by id.
func (c *Client) Lookup(ctx context.Context, id string) (*MealDetail, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("meal id required")
	}
	var payload detailsResponse
	if err := c.get(ctx, "lookup.php", url.Values{"i": {id}}, &payload); err != nil {
		return nil, err
	}
	if len(payload.Meals) == 0 {
		return nil, fmt.Errorf("lookup %s: %w", id, ErrNotFound)
	}
	meal := payload.Meals[0]
	return &meal, nil
}

// get issues a GET and decodes the JSON body into dest. Concurrent calls for
// the same URL share one request. The shared request is detached from any one
// caller's cancellation and bounded by the client timeout; each caller stops
// waiting when its own ctx is done.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, dest any) error {
	rel := &url.URL{Path: endpoint, RawQuery: query.Encode()}
	reqURL := c.baseURL.ResolveReference(rel).String()

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(reqURL, func() (any, error) {
		return c.fetch(shared, reqURL, endpoint)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return fmt.Errorf("execute request: %w", ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return res.Err
	}
	if err := json.Unmarshal(res.Val.([]byte), dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, reqURL, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("api %s returned status %d", endpoint, resp.StatusCode)
	}
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return raw, nil
}

// parseBaseURL normalizes the base so relative endpoints resolve under it.
func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
