package router

import (
	"github.com/deppfellow/contacts/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the contacts API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	// openapi.json and openapi.html, embedded in the binary.
	r.StaticFS("/static", handler.StaticFiles())

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
