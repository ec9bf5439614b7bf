package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateRoutineRequest represents the request body for creating a routine
type CreateRoutineRequest struct {
	Title       string `json:"title" binding:"required" example:"Treino matinal"`
	Description string `json:"description,omitempty" example:"Academia"`
	StartTime   string `json:"start_time,omitempty" example:"07:00"`
	EndTime     string `json:"end_time,omitempty" example:"08:00"`
	DaysOfWeek  []int  `json:"days_of_week" binding:"required" example:"1,3,5"`
}

// UpdateRoutineRequest represents the request body for updating a routine
type UpdateRoutineRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	DaysOfWeek  []int   `json:"days_of_week,omitempty"`
}

// RoutineResponse represents the response body for a routine
type RoutineResponse struct {
	ID                    uuid.UUID `json:"id"`
	UserID                uuid.UUID `json:"user_id"`
	Title                 string    `json:"title"`
	Description           string    `json:"description,omitempty"`
	StartTime             string    `json:"start_time,omitempty"`
	EndTime               string    `json:"end_time,omitempty"`
	DaysOfWeek            []int     `json:"days_of_week"`
	GoogleCalendarEventID string    `json:"google_calendar_event_id,omitempty"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// RoutineListResponse represents the response body for a list of routines
type RoutineListResponse struct {
	Routines   []RoutineResponse `json:"routines"`
	TotalCount int64             `json:"total_count"`
}
