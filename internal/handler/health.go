package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/contacts/internal/middleware"
	"github.com/deppfellow/contacts/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// HealthHandler exposes the /status endpoint used by load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	checks map[string]HealthCheck
}

// NewHealthHandler registers a check for every configured dependency that is
// enabled in observability.health_checks.
func NewHealthHandler(s *server.Server) *HealthHandler {
	checks := make(map[string]HealthCheck)

	if s.DB != nil && s.Config.Observability.CheckEnabled("database") {
		checks["database"] = s.DB.Ping
	}

	if s.Redis != nil && s.Config.Observability.CheckEnabled("redis") {
		checks["redis"] = func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}
	}

	return newHealthHandler(s, checks)
}

func newHealthHandler(s *server.Server, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
	}
}

// CheckHealth returns the overall status plus one entry per check.
//
// It answers 200 when every check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{}, len(h.checks))
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	timeout := h.server.Config.Observability.HealthChecks.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	isHealthy := true

	for name, check := range h.checks {
		checkStart := time.Now()

		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		err := check(ctx)
		cancel()

		elapsed := time.Since(checkStart)

		if err != nil {
			isHealthy = false
			checks[name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Str("check", name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordHealthError(name, elapsed, err)
			continue
		}

		checks[name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}

		logger.Debug().
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check passed")
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) recordHealthError(check string, elapsed time.Duration, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	h.server.LoggerService.GetApplication().RecordCustomEvent(
		"HealthCheckError",
		map[string]interface{}{
			"check_type":       check,
			"operation":        "health_check",
			"error_type":       check + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		},
	)
}
