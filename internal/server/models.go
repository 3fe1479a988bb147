package server

import "github.com/omnimind-research/omnimind/internal/search"

// HTTPError is the JSON error envelope produced by the error handler.
type HTTPError struct {
	Error string `json:"error"`
}

type SearchRequest struct {
	Query   string   `json:"query"`
	Sources []string `json:"sources,omitempty"`
	Limit   int      `json:"limit,omitempty"`
}

type AnalyzeRequest struct {
	Query         string          `json:"query"`
	SearchResults []search.Result `json:"search_results"`
	ProjectID     string          `json:"project_id,omitempty"`
}

type CitationRequest struct {
	SourceTitle   string `json:"source_title"`
	SourceURL     string `json:"source_url"`
	PublishedDate string `json:"published_date,omitempty"`
	Format        string `json:"format,omitempty"`
}

type CitationResponse struct {
	Citation string `json:"citation"`
	Format   string `json:"format"`
}

type DocumentCreateRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags,omitempty"`
	IsEncrypted *bool    `json:"is_encrypted,omitempty"`
}

type DecryptRequest struct {
	DocumentID string `json:"document_id"`
}

type DecryptResponse struct {
	DecryptedContent string `json:"decrypted_content"`
}

type ProjectCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

type AuthSignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}

// NewsArticle is the trending/personalized feed item shape.
type NewsArticle struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	URL              string `json:"url"`
	ImageURL         string `json:"image_url,omitempty"`
	Source           string `json:"source"`
	PublishedAt      string `json:"published_at"`
	Content          string `json:"content"`
	GeographicRegion string `json:"geographic_region,omitempty"`
}
