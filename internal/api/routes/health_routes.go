package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samuelmonteirotf/habitus-app/internal/infrastructure/cache"
	"github.com/samuelmonteirotf/habitus-app/internal/infrastructure/persistence/postgres/connection"
)

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy"`
	Timestamp time.Time         `json:"timestamp" example:"2025-04-17T02:00:00Z"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// SetupHealthRoutes registers health check endpoints
func SetupHealthRoutes(router *gin.Engine, db *connection.Database, redis *cache.RedisClient) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
		})
	})

	router.GET("/health/ready", func(c *gin.Context) {
		checks := make(map[string]string)
		status := "ready"
		code := http.StatusOK

		checks["database"] = "ok"
		if sqlDB, err := db.DB.DB(); err != nil {
			checks["database"] = err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			checks["database"] = err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		// a redis outage degrades caching only, readiness stays ok
		checks["redis"] = "ok"
		if redis == nil || !redis.IsHealthy() {
			checks["redis"] = "unavailable"
		}

		c.JSON(code, HealthResponse{
			Status:    status,
			Timestamp: time.Now().UTC(),
			Checks:    checks,
		})
	})
}
