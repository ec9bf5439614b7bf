package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samuelmonteirotf/habitus-app/internal/api/dto"
	"github.com/samuelmonteirotf/habitus-app/internal/api/middleware"
	"github.com/samuelmonteirotf/habitus-app/internal/domain/user"
	"github.com/samuelmonteirotf/habitus-app/pkg/config"
	"github.com/samuelmonteirotf/habitus-app/pkg/security/auth"
)

// UserHandler handles HTTP requests for registration, login and profile
// management
type UserHandler struct {
	service   user.Service
	cfg       *config.Config
	blacklist *auth.TokenBlacklist
}

// NewUserHandler creates a new user handler
func NewUserHandler(service user.Service, cfg *config.Config, blacklist *auth.TokenBlacklist) *UserHandler {
	return &UserHandler{
		service:   service,
		cfg:       cfg,
		blacklist: blacklist,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account and returns a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.service.CreateUser(c.Request.Context(), user.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Timezone: req.Timezone,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, user.ErrEmailExists):
			statusCode = http.StatusConflict
		case errors.Is(err, user.ErrInvalidInput):
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	token, err := auth.GenerateToken(u.ID, u.Email, h.cfg.Auth.JWTSecret, h.cfg.Auth.JWTIssuer, h.cfg.Auth.JWTExpiryHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.AuthResponse{
		Token: token,
		User:  toUserResponse(u),
	}})
}

// Login godoc
// @Summary Log in
// @Description Validates credentials and returns a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.service.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			statusCode = http.StatusUnauthorized
		case errors.Is(err, user.ErrAccountInactive):
			statusCode = http.StatusForbidden
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	token, err := auth.GenerateToken(u.ID, u.Email, h.cfg.Auth.JWTSecret, h.cfg.Auth.JWTIssuer, h.cfg.Auth.JWTExpiryHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.AuthResponse{
		Token: token,
		User:  toUserResponse(u),
	}})
}

// Logout godoc
// @Summary Log out
// @Description Blacklists the presented token until it expires
// @Tags auth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	tokenValue, exists := c.Get("token")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	tokenString, _ := tokenValue.(string)

	expiry := time.Now().Add(time.Duration(h.cfg.Auth.JWTExpiryHours) * time.Hour)
	if claims, err := auth.ValidateToken(tokenString, h.cfg.Auth.JWTSecret); err == nil && claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	h.blacklist.AddToBlacklist(tokenString, expiry)

	c.Status(http.StatusNoContent)
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, user.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toUserResponse(u)})
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.service.UpdateUser(c.Request.Context(), userID, user.UpdateUserInput{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Timezone:  req.Timezone,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, user.ErrInvalidInput):
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toUserResponse(u)})
}

// ChangePassword godoc
// @Summary Change the authenticated user's password
// @Tags users
// @Accept json
// @Param passwords body dto.ChangePasswordRequest true "Current and new password"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /users/me/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdatePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			statusCode = http.StatusUnauthorized
		case errors.Is(err, user.ErrInvalidInput):
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func toUserResponse(u *user.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		Name:              u.Name,
		AvatarURL:         u.AvatarURL,
		Timezone:          u.Timezone,
		IsActive:          u.IsActive,
		CalendarConnected: u.CalendarConnected(),
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
