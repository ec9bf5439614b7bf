package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/samuelmonteirotf/habitus-app/internal/api/handlers"
	"github.com/samuelmonteirotf/habitus-app/internal/api/middleware"
)

type TasksRoutes struct {
	handler *handlers.TasksHandler
	auth    gin.HandlerFunc
}

func NewTasksRoutes(handler *handlers.TasksHandler, auth gin.HandlerFunc) *TasksRoutes {
	return &TasksRoutes{
		handler: handler,
		auth:    auth,
	}
}

// RegisterRoutes registers all task-related routes
func (t *TasksRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	tasks := router.Group("/api/tasks")
	tasks.Use(t.auth)

	tasks.GET("", gzip.Gzip(gzip.DefaultCompression), cache.CacheResponse(), t.handler.ListTasks)
	tasks.POST("", cache.CacheInvalidate("tasks:*", "dashboard:*"), t.handler.CreateTask)
	tasks.GET("/:id", cache.CacheResponse(), t.handler.GetTask)
	tasks.PUT("/:id", cache.CacheInvalidate("tasks:*", "dashboard:*"), t.handler.UpdateTask)
	tasks.DELETE("/:id", cache.CacheInvalidate("tasks:*", "dashboard:*"), t.handler.DeleteTask)
	tasks.POST("/:id/toggle", cache.CacheInvalidate("tasks:*", "dashboard:*"), t.handler.ToggleTask)
}
