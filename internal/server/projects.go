package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/omnimind-research/omnimind/internal/store"
)

// ProjectsHandler serves research project CRUD. Routes require auth.
type ProjectsHandler struct {
	Store *store.Store
}

func (h *ProjectsHandler) Register(g *echo.Group) {
	g.POST("", h.create)
	g.GET("", h.list)
}

func (h *ProjectsHandler) create(c echo.Context) error {
	var req ProjectCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	category := req.Category
	if category == "" {
		category = "General"
	}
	p, err := h.Store.CreateProject(c.Request().Context(), userID(c), req.Title, req.Description, category)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProjectsHandler) list(c echo.Context) error {
	projects, err := h.Store.ListProjects(c.Request().Context(), userID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if projects == nil {
		projects = []store.Project{}
	}
	return c.JSON(http.StatusOK, projects)
}
