package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// PredictHandler serves the trend-prediction endpoints. The responses
// are heuristic placeholders until a real forecasting backend lands.
type PredictHandler struct{}

func (h *PredictHandler) Register(api *echo.Group) {
	api.GET("/predict/trends", h.trends)
	api.GET("/predict/research-directions", h.directions)
}

func (h *PredictHandler) trends(c echo.Context) error {
	topic := c.QueryParam("topic")
	if topic == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "topic is required")
	}
	months := 3
	if raw := c.QueryParam("months_ahead"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &months); err != nil || months <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "months_ahead must be a positive integer")
		}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"topic":             topic,
		"prediction_period": fmt.Sprintf("%d months", months),
		"predicted_trend":   "upward",
		"confidence":        0.78,
		"factors": []string{
			"Recent media mentions increasing 15% weekly",
			"Academic publications accelerating",
			"Industry adoption rate trending up",
		},
	})
}

func (h *PredictHandler) directions(c echo.Context) error {
	topic := c.QueryParam("topic")
	if topic == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "topic is required")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"topic": topic,
		"suggested_directions": []string{
			"Comparative analysis across regions",
			"Long-term impact studies",
			"Integration with emerging technologies",
			"Policy implications and recommendations",
		},
	})
}
