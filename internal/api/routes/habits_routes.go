package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/samuelmonteirotf/habitus-app/internal/api/handlers"
	"github.com/samuelmonteirotf/habitus-app/internal/api/middleware"
)

type HabitsRoutes struct {
	handler *handlers.HabitsHandler
	auth    gin.HandlerFunc
}

func NewHabitsRoutes(handler *handlers.HabitsHandler, auth gin.HandlerFunc) *HabitsRoutes {
	return &HabitsRoutes{
		handler: handler,
		auth:    auth,
	}
}

// RegisterRoutes registers all habit-related routes
func (h *HabitsRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	habits := router.Group("/api/habits")
	habits.Use(h.auth)

	// List and filter - specific routes first. gzip registers before the
	// cache so the recorder stores the uncompressed body.
	habits.GET("", gzip.Gzip(gzip.DefaultCompression), cache.CacheResponse(), h.handler.ListHabits)
	habits.POST("", cache.CacheInvalidate("habits:*"), h.handler.CreateHabit)
	habits.GET("/heatmap", gzip.Gzip(gzip.DefaultCompression), cache.CacheResponse(), h.handler.GetHeatmap)

	// CRUD operations with parameters
	habits.GET("/:id", cache.CacheResponse(), h.handler.GetHabit)
	habits.PUT("/:id", cache.CacheInvalidate("habits:*"), h.handler.UpdateHabit)
	habits.POST("/:id/deactivate", cache.CacheInvalidate("habits:*", "dashboard:*"), h.handler.DeactivateHabit)
	habits.DELETE("/:id", cache.CacheInvalidate("habits:*"), h.handler.DeleteHabit)

	// Completion routes
	habits.POST("/:id/toggle", cache.CacheInvalidate("habits:*", "dashboard:*"), h.handler.ToggleCompletion)
	habits.GET("/:id/stats", cache.CacheResponse(), h.handler.GetHabitStats)
}
