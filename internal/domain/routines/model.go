package routines

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Routine represents a weekly-recurring block of time
type Routine struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_routine_user"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	// Time-of-day bounds are optional; an empty string means the
	// routine has no fixed slot on its weekdays
	StartTime string `json:"start_time,omitempty" gorm:"size:5"`
	EndTime   string `json:"end_time,omitempty" gorm:"size:5"`

	// Weekdays the routine occurs on, 0 = Sunday through 6 = Saturday
	DaysOfWeek pq.Int32Array `json:"days_of_week" gorm:"type:integer[];not null"`

	GoogleCalendarEventID string `json:"google_calendar_event_id,omitempty" gorm:"size:255"`

	IsActive bool `json:"is_active" gorm:"default:true;not null;index:idx_routine_active"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// TableName specifies the table name for the Routine model
func (Routine) TableName() string {
	return "routines"
}

// HasTimeSlot reports whether both time-of-day bounds are set
func (r *Routine) HasTimeSlot() bool {
	return r.StartTime != "" && r.EndTime != ""
}

// CreateRoutineInput represents the input for creating a new routine
type CreateRoutineInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	DaysOfWeek  []int     `json:"days_of_week"`
	UserID      uuid.UUID `json:"user_id"`
}

// UpdateRoutineInput represents the input for updating a routine
type UpdateRoutineInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	DaysOfWeek  []int   `json:"days_of_week,omitempty"`
}

// BeforeCreate is called before creating a new routine record
func (r *Routine) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating a routine record
func (r *Routine) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}

// Weekdays returns the routine's days as plain ints
func (r *Routine) Weekdays() []int {
	days := make([]int, len(r.DaysOfWeek))
	for i, d := range r.DaysOfWeek {
		days[i] = int(d)
	}
	return days
}
