package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmvillar/turnero/internal/auth"
	"github.com/jmvillar/turnero/internal/service"
)

// StatsHandler serves the administrative daily statistics.
type StatsHandler struct {
	Stats *service.StatsService
}

func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{Stats: stats}
}

// Estadisticas handles GET /api/estadisticas.
func (h *StatsHandler) Estadisticas(c echo.Context) error {
	ident, _ := auth.FromContext(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	r, err := h.Stats.DailySummary(ctx, ident)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "acceso denegado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, r)
}
