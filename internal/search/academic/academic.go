// Package academic implements the academic fetcher backed by the
// Semantic Scholar paper-search API. Without an API key it honours
// the fetcher contract trivially by returning no results.
package academic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/omnimind-research/omnimind/config"
	"github.com/omnimind-research/omnimind/internal/search"
)

// DefaultEndpoint is the Semantic Scholar paper-search endpoint.
const DefaultEndpoint = "https://api.semanticscholar.org/graph/v1/paper/search"

const relevanceScore = 0.9

type paper struct {
	Title         string `json:"title"`
	Abstract      string `json:"abstract"`
	URL           string `json:"url"`
	Year          int    `json:"year"`
	CitationCount *int   `json:"citationCount"`
	Authors       []struct {
		Name string `json:"name"`
	} `json:"authors"`
}

type response struct {
	Total int     `json:"total"`
	Data  []paper `json:"data"`
}

// Client fetches academic papers for a query.
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// New creates an academic fetcher from configuration.
func New(cfg config.AcademicConfig) *Client {
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
func (c *Client) Name() string { return search.ProviderAcademic }

// Fetch issues one paper-search request and maps at most limit
// entries. Papers without a URL are skipped.
func (c *Client) Fetch(ctx context.Context, query string, limit int) ([]search.Result, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Add("query", query)
	params.Add("limit", strconv.Itoa(limit))
	params.Add("fields", "title,abstract,url,year,citationCount,authors")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", c.endpoint, params.Encode()), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.apiKey)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch papers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("semantic scholar error: %s", resp.Status)
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := make([]search.Result, 0, len(result.Data))
	for _, p := range result.Data {
		if len(out) >= limit {
			break
		}
		if p.URL == "" {
			continue
		}
		var published string
		if p.Year > 0 {
			published = strconv.Itoa(p.Year)
		}
		var names []string
		for _, a := range p.Authors {
			if a.Name != "" {
				names = append(names, a.Name)
			}
		}
		out = append(out, search.Result{
			Title:          p.Title,
			URL:            p.URL,
			Source:         "Semantic Scholar",
			Snippet:        p.Abstract,
			RelevanceScore: relevanceScore,
			PublishedDate:  published,
			Author:         strings.Join(names, ", "),
			Citations:      p.CitationCount,
		})
	}
	return out, nil
}
