package handlers

import (
	"log/slog"
	"net/http"

	"github.com/damacus/iron-gallery/internal/services"
	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	readiness services.Readiness
	logger    *slog.Logger
}

func NewHealthHandler(readiness services.Readiness, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{readiness: readiness, logger: logger}
}

// Live reports that the process is serving
func (h *HealthHandler) Live(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Ready reports whether the storage backend is reachable
func (h *HealthHandler) Ready(c echo.Context) error {
	if err := h.readiness.Ready(c.Request().Context()); err != nil {
		h.logger.WarnContext(c.Request().Context(), "storage backend not ready", "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "storage backend not ready")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
