package tasks

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task represents a one-off item with an optional due instant
type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index:idx_task_user"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text"`
	DueDate     *time.Time `json:"due_date,omitempty" gorm:"index:idx_task_due"`
	Priority    string     `json:"priority" gorm:"size:10;default:'medium';not null"`
	Completed   bool       `json:"completed" gorm:"default:false;not null;index:idx_task_completed"`

	// Optional link to the routine the task belongs to
	RoutineID *uuid.UUID `json:"routine_id,omitempty" gorm:"type:uuid;index:idx_task_routine"`

	GoogleCalendarEventID string `json:"google_calendar_event_id,omitempty" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// Task priorities accepted by the API
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// CreateTaskInput represents the input for creating a new task
type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority"`
	RoutineID   *uuid.UUID `json:"routine_id,omitempty"`
	UserID      uuid.UUID  `json:"user_id"`
}

// UpdateTaskInput represents the input for updating a task
type UpdateTaskInput struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	RoutineID   *uuid.UUID `json:"routine_id,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
}

// BeforeCreate is called before creating a new task record
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating a task record
func (t *Task) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}
