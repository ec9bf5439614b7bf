package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required" example:"Pagar contas"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority,omitempty" example:"medium"`
	RoutineID   *uuid.UUID `json:"routine_id,omitempty"`
}

// UpdateTaskRequest represents the request body for updating a task
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	RoutineID   *uuid.UUID `json:"routine_id,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
}

// TaskResponse represents the response body for a task
type TaskResponse struct {
	ID                    uuid.UUID  `json:"id"`
	UserID                uuid.UUID  `json:"user_id"`
	Title                 string     `json:"title"`
	Description           string     `json:"description,omitempty"`
	DueDate               *time.Time `json:"due_date,omitempty"`
	Priority              string     `json:"priority"`
	RoutineID             *uuid.UUID `json:"routine_id,omitempty"`
	Completed             bool       `json:"completed"`
	GoogleCalendarEventID string     `json:"google_calendar_event_id,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// TaskListResponse represents the response body for a list of tasks
type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}
