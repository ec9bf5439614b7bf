package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateHabitRequest represents the request body for creating a habit
type CreateHabitRequest struct {
	Title       string `json:"title" binding:"required" example:"Beber água"`
	Description string `json:"description,omitempty" example:"2 litros por dia"`
	TargetCount int    `json:"target_count,omitempty" example:"1"`
	TimeOfDay   string `json:"time_of_day,omitempty" example:"09:00"`
	Color       string `json:"color,omitempty" example:"#3B82F6"`
	Frequency   string `json:"frequency,omitempty" example:"daily"`
}

// UpdateHabitRequest represents the request body for updating a habit
type UpdateHabitRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	TargetCount *int    `json:"target_count,omitempty"`
	TimeOfDay   *string `json:"time_of_day,omitempty"`
	Color       *string `json:"color,omitempty"`
	Frequency   *string `json:"frequency,omitempty"`
}

// HabitResponse represents the response body for a habit
type HabitResponse struct {
	ID                    uuid.UUID `json:"id"`
	UserID                uuid.UUID `json:"user_id"`
	Title                 string    `json:"title"`
	Description           string    `json:"description,omitempty"`
	TargetCount           int       `json:"target_count"`
	TimeOfDay             string    `json:"time_of_day"`
	Color                 string    `json:"color"`
	Frequency             string    `json:"frequency"`
	IsActive              bool      `json:"is_active"`
	GoogleCalendarEventID string    `json:"google_calendar_event_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ToggleCompletionRequest is the optional body of a completion toggle;
// the note is stored with the log when a completion is created
type ToggleCompletionRequest struct {
	Note string `json:"note,omitempty" example:"30 minutos"`
}

// HabitStatsResponse carries the derived progress figures for a habit
type HabitStatsResponse struct {
	TodayCompleted   bool `json:"today_completed"`
	Streak           int  `json:"streak"`
	WeekProgress     int  `json:"week_progress"`
	MonthProgress    int  `json:"month_progress"`
	TotalCompletions int  `json:"total_completions"`
}

// HabitWithStatsResponse pairs a habit with its computed stats
type HabitWithStatsResponse struct {
	HabitResponse
	Stats HabitStatsResponse `json:"stats"`
}

// HabitListResponse represents the response body for a list of habits
type HabitListResponse struct {
	Habits     []HabitWithStatsResponse `json:"habits"`
	TotalCount int64                    `json:"total_count"`
}

// HeatmapResponse represents aggregated completion counts per day
type HeatmapResponse struct {
	Data     map[string]int `json:"data"`
	Period   string         `json:"period"`
	MinValue int            `json:"min_value"`
	MaxValue int            `json:"max_value"`
}
