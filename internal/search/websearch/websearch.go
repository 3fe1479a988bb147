// Package websearch implements the web fetcher. Without an API key it
// honours the fetcher contract trivially by returning no results; with
// one it queries the configured backend (Brave or Serper).
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/omnimind-research/omnimind/config"
	"github.com/omnimind-research/omnimind/internal/search"
)

// Backend endpoints, overridable in tests.
const (
	DefaultBraveEndpoint  = "https://api.search.brave.com/res/v1/web/search"
	DefaultSerperEndpoint = "https://google.serper.dev/search"
)

const relevanceScore = 0.6

// Client fetches web search results for a query.
type Client struct {
	provider string
	apiKey   string
	http     *http.Client

	BraveEndpoint  string
	SerperEndpoint string
}

// New creates a web fetcher from configuration.
func New(cfg config.WebSearchConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	provider := cfg.Provider
	if provider == "" {
		provider = "brave"
	}
	return &Client{
		provider:       provider,
		apiKey:         cfg.APIKey,
		http:           &http.Client{Timeout: timeout},
		BraveEndpoint:  DefaultBraveEndpoint,
		SerperEndpoint: DefaultSerperEndpoint,
	}
}

// Name implements search.Fetcher.
func (c *Client) Name() string { return search.ProviderWeb }

// Fetch queries the configured backend. An unset API key yields an
// empty result without a network call.
func (c *Client) Fetch(ctx context.Context, query string, limit int) ([]search.Result, error) {
	if c.apiKey == "" {
		return nil, nil
	}
	switch c.provider {
	case "serper":
		return c.fetchSerper(ctx, query, limit)
	case "brave":
		return c.fetchBrave(ctx, query, limit)
	default:
		return nil, fmt.Errorf("unsupported web search provider: %s", c.provider)
	}
}

func (c *Client) fetchBrave(ctx context.Context, query string, limit int) ([]search.Result, error) {
	// https://api.search.brave.com/app/documentation/web-search
	reqURL := fmt.Sprintf("%s?q=%s&count=%d", c.BraveEndpoint, url.QueryEscape(query), limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave error: %s", resp.Status)
	}
	var raw struct {
		Web struct {
			Results []struct {
				Title   string `json:"title"`
				URL     string `json:"url"`
				Snippet string `json:"description"`
				Age     string `json:"age"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	var out []search.Result
	for _, r := range raw.Web.Results {
		if len(out) >= limit {
			break
		}
		if r.URL == "" {
			continue
		}
		out = append(out, search.Result{
			Title:          r.Title,
			URL:            r.URL,
			Source:         domainOf(r.URL),
			Snippet:        r.Snippet,
			RelevanceScore: relevanceScore,
			PublishedDate:  r.Age,
		})
	}
	return out, nil
}

func (c *Client) fetchSerper(ctx context.Context, query string, limit int) ([]search.Result, error) {
	// https://serper.dev/ docs
	payload, err := json.Marshal(map[string]any{"q": query, "num": limit})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.SerperEndpoint, strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper error: %s", resp.Status)
	}
	var raw struct {
		Organic []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
			Date    string `json:"date"`
		} `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	var out []search.Result
	for _, r := range raw.Organic {
		if len(out) >= limit {
			break
		}
		if r.Link == "" {
			continue
		}
		out = append(out, search.Result{
			Title:          r.Title,
			URL:            r.Link,
			Source:         domainOf(r.Link),
			Snippet:        r.Snippet,
			RelevanceScore: relevanceScore,
			PublishedDate:  r.Date,
		})
	}
	return out, nil
}

func domainOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "Web"
	}
	return strings.ToLower(u.Host)
}
