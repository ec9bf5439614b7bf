package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/samuelmonteirotf/habitus-app/internal/api/dto"
	"github.com/samuelmonteirotf/habitus-app/internal/api/middleware"
	"github.com/samuelmonteirotf/habitus-app/internal/domain/user"
	"github.com/samuelmonteirotf/habitus-app/pkg/security/auth"
)

var oauthLog = logrus.New()

const googleProvider = "google"

// OAuthHandler drives the Google Calendar authorization flow
type OAuthHandler struct {
	oauth *auth.OAuthService
	users user.Service
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(oauth *auth.OAuthService, users user.Service) *OAuthHandler {
	return &OAuthHandler{
		oauth: oauth,
		users: users,
	}
}

// ConnectCalendar godoc
// @Summary Start the Google Calendar authorization flow
// @Description Returns the Google consent URL the client should redirect the user to
// @Tags calendar
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /calendar/connect [get]
func (h *OAuthHandler) ConnectCalendar(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	url, _, err := h.oauth.GetAuthURLFor(googleProvider, userID.String())
	if err != nil {
		oauthLog.Errorf("Failed to build authorization URL: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "calendar authorization is not configured"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"auth_url": url}})
}

// CalendarCallback godoc
// @Summary Google Calendar authorization callback
// @Description Exchanges the authorization code and stores the calendar tokens for the initiating user
// @Tags calendar
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "State token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /calendar/callback [get]
func (h *OAuthHandler) CalendarCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		oauthLog.Warnf("Authorization denied by user: %s", errParam)
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization was denied"})
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code or state"})
		return
	}

	subject, ok := h.oauth.ConsumeState(state, googleProvider)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired state"})
		return
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state subject"})
		return
	}

	token, err := h.oauth.Exchange(c.Request.Context(), googleProvider, code)
	if err != nil {
		oauthLog.Errorf("Code exchange failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to exchange authorization code"})
		return
	}

	if err := h.users.StoreCalendarTokens(c.Request.Context(), userID, token); err != nil {
		oauthLog.Errorf("Failed to store calendar tokens for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store calendar tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "google calendar connected"}})
}

// CalendarStatus godoc
// @Summary Report the calendar connection status
// @Tags calendar
// @Produce json
// @Success 200 {object} dto.CalendarStatusResponse
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /calendar/status [get]
func (h *OAuthHandler) CalendarStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	u, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, user.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.CalendarStatusResponse{
		Connected:   u.CalendarConnected(),
		TokenExpiry: u.GoogleTokenExpiry,
	}})
}

// DisconnectCalendar godoc
// @Summary Disconnect Google Calendar
// @Description Clears the stored calendar tokens; existing events stay on the remote calendar
// @Tags calendar
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /calendar/disconnect [delete]
func (h *OAuthHandler) DisconnectCalendar(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.users.DisconnectCalendar(c.Request.Context(), userID); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, user.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
