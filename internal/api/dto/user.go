package dto

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Samuel Monteiro"`
	Email    string `json:"email" binding:"required,email" example:"samuel@example.com"`
	Password string `json:"password" binding:"required,min=6"`
	Timezone string `json:"timezone,omitempty" example:"America/Sao_Paulo"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token alongside the authenticated user
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateUserRequest represents the request body for profile updates
type UpdateUserRequest struct {
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Timezone  *string `json:"timezone,omitempty"`
}

// ChangePasswordRequest represents the request body for a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// UserResponse represents the response body for a user profile
type UserResponse struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
	Timezone          string    `json:"timezone"`
	IsActive          bool      `json:"is_active"`
	CalendarConnected bool      `json:"calendar_connected"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CalendarStatusResponse reports whether a Google Calendar link is active
type CalendarStatusResponse struct {
	Connected   bool       `json:"connected"`
	TokenExpiry *time.Time `json:"token_expiry,omitempty"`
}
