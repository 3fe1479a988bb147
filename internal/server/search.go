package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/omnimind-research/omnimind/internal/search"
)

const defaultSearchLimit = 10

// SearchHandler exposes the aggregated search pipeline.
type SearchHandler struct {
	Agg      *search.Aggregator
	Registry *search.Registry
}

func (h *SearchHandler) Register(g *echo.Group) {
	g.POST("", h.unified)
	g.POST("/news", h.singleSource(search.ProviderNews))
	g.POST("/academic", h.singleSource(search.ProviderAcademic))
}

// unified performs one search across the requested sources and returns
// the ranked, truncated pool. Complete failure of every fetcher is an
// empty 200, never an error status.
func (h *SearchHandler) unified(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	results := h.Agg.UnifiedSearch(c.Request().Context(), req.Query, req.Sources, limit)
	return c.JSON(http.StatusOK, results)
}

// singleSource serves the per-provider endpoints, which take the query
// as a query parameter.
func (h *SearchHandler) singleSource(provider string) echo.HandlerFunc {
	return func(c echo.Context) error {
		query := c.QueryParam("query")
		if query == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "query is required")
		}
		limit := defaultSearchLimit
		if raw := c.QueryParam("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
			}
			limit = n
		}
		results := h.Agg.UnifiedSearch(c.Request().Context(), query, []string{provider}, limit)
		return c.JSON(http.StatusOK, results)
	}
}
