package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lettingshub/app-tenancy/internal/config"
	"github.com/lettingshub/app-tenancy/internal/observability"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// HealthResponse reports service health and per-dependency status.
type HealthResponse struct {
	Status   string            `json:"status" example:"healthy"`
	Services map[string]string `json:"services"`
}

// HealthCheck godoc
// @Summary Health check
// @Description Pings MongoDB and Redis and reports per-dependency status.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "All dependencies reachable"
// @Failure 503 {object} HealthResponse "One or more dependencies unreachable"
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "HealthCheck")
	defer span.End()

	logger := observability.Logger()

	health := HealthResponse{
		Status:   "healthy",
		Services: map[string]string{"mongodb": "healthy", "redis": "healthy"},
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := config.MongoDB.Client().Ping(pingCtx, nil); err != nil {
		logger.Warn("mongodb health check failed", zap.Error(err))
		health.Status = "unhealthy"
		health.Services["mongodb"] = "unhealthy"
	}

	if err := config.Redis.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis health check failed", zap.Error(err))
		health.Status = "unhealthy"
		health.Services["redis"] = "unhealthy"
	}

	if health.Status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	c.JSON(http.StatusOK, health)
}
