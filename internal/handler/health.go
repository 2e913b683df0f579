package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/maska/internal/middleware"
	"github.com/deppfellow/maska/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// HealthHandler reports liveness plus database and Redis reachability for
// monitors and load balancers.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type check map[string]interface{}

// CheckHealth answers 200 when every required dependency is reachable and
// 503 otherwise. Redis is optional: a failed ping is reported but does not
// make the service unhealthy.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": cfg.Primary.Env,
		"checks":      checks,
	}
	isHealthy := true

	if h.checkEnabled("database") {
		switch {
		case h.server.DB == nil:
			checks["database"] = check{"status": "healthy", "driver": cfg.Database.Driver}
		default:
			result, err := h.ping(c.Request().Context(), func(ctx context.Context) error {
				return h.server.DB.Pool.Ping(ctx)
			})
			checks["database"] = result
			if err != nil {
				isHealthy = false
				h.reportFailure(logger, "database", result, err)
			}
		}
	}

	if h.checkEnabled("redis") && h.server.Redis != nil {
		result, err := h.ping(c.Request().Context(), func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
		checks["redis"] = result
		if err != nil {
			h.reportFailure(logger, "redis", result, err)
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordEvent(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) checkEnabled(name string) bool {
	obs := h.server.Config.Observability
	return obs == nil || obs.HealthCheckEnabled(name)
}

func (h *HealthHandler) timeout() time.Duration {
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		return obs.HealthChecks.Timeout
	}
	return 5 * time.Second
}

func (h *HealthHandler) ping(parent context.Context, ping func(ctx context.Context) error) (check, error) {
	ctx, cancel := context.WithTimeout(parent, h.timeout())
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	result := check{
		"status":        "healthy",
		"response_time": time.Since(start).String(),
	}
	if err != nil {
		result["status"] = "unhealthy"
		result["error"] = err.Error()
	}
	return result, err
}

func (h *HealthHandler) reportFailure(logger zerolog.Logger, name string, result check, err error) {
	logger.Error().
		Err(err).
		Str("check", name).
		Interface("response_time", result["response_time"]).
		Msg("health check failed")

	h.recordEvent(map[string]interface{}{
		"check_type":    name,
		"operation":     "health_check",
		"error_type":    name + "_unhealthy",
		"error_message": err.Error(),
	})
}

func (h *HealthHandler) recordEvent(attrs map[string]interface{}) {
	if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
		h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", attrs)
	}
}
