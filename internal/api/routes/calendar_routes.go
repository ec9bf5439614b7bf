package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/samuelmonteirotf/habitus-app/internal/api/handlers"
)

type CalendarRoutes struct {
	handler *handlers.OAuthHandler
	auth    gin.HandlerFunc
}

func NewCalendarRoutes(handler *handlers.OAuthHandler, auth gin.HandlerFunc) *CalendarRoutes {
	return &CalendarRoutes{
		handler: handler,
		auth:    auth,
	}
}

// RegisterRoutes registers the Google Calendar authorization routes.
// The callback is unauthenticated since it arrives as a browser
// redirect from Google.
func (cr *CalendarRoutes) RegisterRoutes(router *gin.Engine) {
	calendar := router.Group("/api/calendar")
	calendar.GET("/callback", cr.handler.CalendarCallback)

	calendar.GET("/connect", cr.auth, cr.handler.ConnectCalendar)
	calendar.GET("/status", cr.auth, cr.handler.CalendarStatus)
	calendar.DELETE("/disconnect", cr.auth, cr.handler.DisconnectCalendar)
}
