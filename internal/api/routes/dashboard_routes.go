package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/samuelmonteirotf/habitus-app/internal/api/handlers"
	"github.com/samuelmonteirotf/habitus-app/internal/api/middleware"
)

type DashboardRoutes struct {
	handler *handlers.DashboardHandler
	auth    gin.HandlerFunc
}

func NewDashboardRoutes(handler *handlers.DashboardHandler, auth gin.HandlerFunc) *DashboardRoutes {
	return &DashboardRoutes{
		handler: handler,
		auth:    auth,
	}
}

// RegisterRoutes registers the dashboard summary route
func (d *DashboardRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	dashboard := router.Group("/api/dashboard")
	dashboard.Use(d.auth)

	dashboard.GET("", gzip.Gzip(gzip.DefaultCompression), cache.CacheResponse(), d.handler.GetDashboard)
}
