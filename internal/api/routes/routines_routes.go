package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/samuelmonteirotf/habitus-app/internal/api/handlers"
	"github.com/samuelmonteirotf/habitus-app/internal/api/middleware"
)

type RoutinesRoutes struct {
	handler *handlers.RoutinesHandler
	auth    gin.HandlerFunc
}

func NewRoutinesRoutes(handler *handlers.RoutinesHandler, auth gin.HandlerFunc) *RoutinesRoutes {
	return &RoutinesRoutes{
		handler: handler,
		auth:    auth,
	}
}

// RegisterRoutes registers all routine-related routes
func (r *RoutinesRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	routines := router.Group("/api/routines")
	routines.Use(r.auth)

	routines.GET("", cache.CacheResponse(), r.handler.ListRoutines)
	routines.POST("", cache.CacheInvalidate("routines:*", "dashboard:*"), r.handler.CreateRoutine)
	routines.GET("/:id", cache.CacheResponse(), r.handler.GetRoutine)
	routines.PUT("/:id", cache.CacheInvalidate("routines:*", "dashboard:*"), r.handler.UpdateRoutine)
	routines.DELETE("/:id", cache.CacheInvalidate("routines:*", "dashboard:*"), r.handler.DeleteRoutine)
}
