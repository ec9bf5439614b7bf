package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/samuelmonteirotf/habitus-app/internal/api/handlers"
	"github.com/samuelmonteirotf/habitus-app/internal/api/middleware"
)

type UserRoutes struct {
	handler *handlers.UserHandler
	auth    gin.HandlerFunc
}

func NewUserRoutes(handler *handlers.UserHandler, auth gin.HandlerFunc) *UserRoutes {
	return &UserRoutes{
		handler: handler,
		auth:    auth,
	}
}

// RegisterRoutes registers profile management routes
func (u *UserRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	users := router.Group("/api/users")
	users.Use(u.auth)

	users.GET("/me", cache.CacheResponse(), u.handler.GetProfile)
	users.PUT("/me", cache.CacheInvalidate("users:*"), u.handler.UpdateProfile)
	users.PUT("/me/password", u.handler.ChangePassword)
}
