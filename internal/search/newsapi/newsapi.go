// Package newsapi implements the news fetcher backed by the NewsAPI
// article-search endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/omnimind-research/omnimind/config"
	"github.com/omnimind-research/omnimind/internal/search"
)

// DefaultEndpoint is the NewsAPI "everything" search endpoint.
const DefaultEndpoint = "https://newsapi.org/v2/everything"

// relevanceScore is the fixed fetcher-local score assigned to every
// news result. It is not computed from content and is not calibrated
// against other providers.
const relevanceScore = 0.8

type article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type response struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []article `json:"articles"`
}

// Client fetches news articles for a query.
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// New creates a news fetcher from configuration.
func New(cfg config.NewsAPIConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// Name implements search.Fetcher.
func (c *Client) Name() string { return search.ProviderNews }

// Fetch issues one article-search request and maps at most limit
// entries. An unset API key yields an empty result without a network
// call. Articles without a URL are skipped.
func (c *Client) Fetch(ctx context.Context, query string, limit int) ([]search.Result, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("sortBy", "relevancy")
	params.Add("language", "en")
	params.Add("pageSize", fmt.Sprintf("%d", limit))
	params.Add("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", c.endpoint, params.Encode()), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi error: %s", resp.Status)
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := make([]search.Result, 0, len(result.Articles))
	for _, a := range result.Articles {
		if len(out) >= limit {
			break
		}
		if a.URL == "" {
			continue
		}
		source := a.Source.Name
		if source == "" {
			source = "News"
		}
		out = append(out, search.Result{
			Title:          a.Title,
			URL:            a.URL,
			Source:         source,
			Snippet:        a.Description,
			RelevanceScore: relevanceScore,
			PublishedDate:  a.PublishedAt,
			Author:         a.Author,
		})
	}
	return out, nil
}
