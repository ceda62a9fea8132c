package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/go-cms/internal/middleware"
	"github.com/deppfellow/go-cms/internal/server"
	"github.com/labstack/echo/v4"
)

// healthCheck pings one dependency. A failing critical check makes the whole
// service unhealthy; other failures are only reported.
type healthCheck struct {
	ping     func(ctx context.Context) error
	critical bool
}

type HealthHandler struct {
	Handler
	checks  map[string]healthCheck
	enabled []string
	timeout time.Duration
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	cfg := s.Config.Observability.HealthChecks

	checks := map[string]healthCheck{
		"database": {ping: s.DB.Pool.Ping, critical: true},
	}
	if s.Redis != nil {
		checks["redis"] = healthCheck{ping: func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}}
	}

	enabled := cfg.Checks
	if !cfg.Enabled {
		enabled = nil
	}

	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
		enabled: enabled,
		timeout: cfg.Timeout,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	results := make(map[string]any, len(h.enabled))
	isHealthy := true

	for _, name := range h.enabled {
		check, ok := h.checks[name]
		if !ok {
			continue
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := check.ping(ctx)
		elapsed := time.Since(checkStart)
		cancel()

		if err == nil {
			results[name] = map[string]any{
				"status":        "healthy",
				"response_time": elapsed.String(),
			}
			continue
		}

		if check.critical {
			isHealthy = false
		}
		results[name] = map[string]any{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}

		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		h.recordFailure(map[string]any{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      results,
	}

	if !isHealthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("service unhealthy")
		h.recordFailure(map[string]any{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordFailure(attrs map[string]any) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
