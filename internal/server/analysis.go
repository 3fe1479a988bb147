package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/omnimind-research/omnimind/internal/analysis"
	"github.com/omnimind-research/omnimind/internal/citation"
)

// AnalysisHandler exposes research synthesis and citation formatting.
type AnalysisHandler struct{}

func (h *AnalysisHandler) Register(api *echo.Group) {
	api.POST("/analyze", h.analyze)
	api.POST("/citations", h.citations)
}

func (h *AnalysisHandler) analyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	return c.JSON(http.StatusOK, analysis.AnalyzeResults(req.Query, req.SearchResults))
}

func (h *AnalysisHandler) citations(c echo.Context) error {
	var req CitationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.SourceTitle == "" && req.SourceURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "source_title or source_url is required")
	}
	style := citation.Style(req.Format)
	if style == "" {
		style = citation.StyleAPA
	}
	out, err := citation.Format(citation.Source{
		Title:         req.SourceTitle,
		URL:           req.SourceURL,
		PublishedDate: req.PublishedDate,
	}, style)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, CitationResponse{Citation: out, Format: string(style)})
}
