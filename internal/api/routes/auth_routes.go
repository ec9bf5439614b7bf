package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/samuelmonteirotf/habitus-app/internal/api/handlers"
)

type AuthRoutes struct {
	handler *handlers.UserHandler
	auth    gin.HandlerFunc
}

func NewAuthRoutes(handler *handlers.UserHandler, auth gin.HandlerFunc) *AuthRoutes {
	return &AuthRoutes{
		handler: handler,
		auth:    auth,
	}
}

// RegisterRoutes registers registration, login and logout routes
func (a *AuthRoutes) RegisterRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")
	auth.POST("/register", a.handler.Register)
	auth.POST("/login", a.handler.Login)
	auth.POST("/logout", a.auth, a.handler.Logout)
}
