package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/omnimind-research/omnimind/internal/search"
	"github.com/omnimind-research/omnimind/internal/store"
	"github.com/omnimind-research/omnimind/internal/trends"
)

// NewsHandler serves the trending and personalized news feeds.
type NewsHandler struct {
	Trends *trends.Cache
	Store  *store.Store
	Agg    *search.Aggregator
}

func (h *NewsHandler) Register(api *echo.Group, authMW echo.MiddlewareFunc) {
	api.GET("/news/trending", h.trending)
	api.GET("/news/personalized", h.personalized, authMW)
}

func (h *NewsHandler) trending(c echo.Context) error {
	region := c.QueryParam("region")
	if region == "" {
		region = "global"
	}
	limit := defaultSearchLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	results := h.Trends.Trending(c.Request().Context(), region, limit)
	articles := make([]NewsArticle, 0, len(results))
	for _, r := range results {
		published := r.PublishedDate
		if published == "" {
			published = time.Now().Format(time.RFC3339)
		}
		articles = append(articles, NewsArticle{
			Title:            r.Title,
			Description:      r.Snippet,
			URL:              r.URL,
			Source:           r.Source,
			PublishedAt:      published,
			Content:          r.Snippet,
			GeographicRegion: region,
		})
	}
	return c.JSON(http.StatusOK, articles)
}

// personalized searches news for each of the user's stored interests
// and merges the pools. A user with no interests gets an empty feed.
func (h *NewsHandler) personalized(c echo.Context) error {
	limit := defaultSearchLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	interests, err := h.Store.ListInterests(c.Request().Context(), userID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	feed := make([]search.Result, 0, limit)
	for _, topic := range interests {
		if len(feed) >= limit {
			break
		}
		results := h.Agg.UnifiedSearch(c.Request().Context(), topic, []string{search.ProviderNews}, limit-len(feed))
		feed = append(feed, results...)
	}
	return c.JSON(http.StatusOK, feed)
}
