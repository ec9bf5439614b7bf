package habits

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Habit struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_habit_user"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	TargetCount int       `json:"target_count" gorm:"default:1;not null"`
	TimeOfDay   string    `json:"time_of_day" gorm:"size:5;default:'09:00'"`
	Color       string    `json:"color" gorm:"size:7;default:'#3B82F6';not null"`
	Frequency   string    `json:"frequency" gorm:"size:10;default:'daily';not null"`

	// Deactivated habits keep their logs but drop out of listings
	IsActive bool `json:"is_active" gorm:"default:true;not null;index:idx_habit_active"`

	// Remote event reference, set after a successful calendar sync
	GoogleCalendarEventID string `json:"google_calendar_event_id,omitempty" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// Habit frequencies accepted by the API
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// DefaultColor is applied when a habit is created without one
const DefaultColor = "#3B82F6"

// TableName specifies the table name for the Habit model
func (Habit) TableName() string {
	return "habits"
}

// HabitLog records a single habit completion at an absolute instant
type HabitLog struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	HabitID     uuid.UUID `json:"habit_id" gorm:"type:uuid;not null;index:idx_habit_log,priority:1"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_habit_log,priority:2;index:idx_user_log_date,priority:1"`
	CompletedAt time.Time `json:"completed_at" gorm:"not null;index:idx_habit_log,priority:3;index:idx_user_log_date,priority:2"`
	Notes       string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the HabitLog model
func (HabitLog) TableName() string {
	return "habit_logs"
}

// HabitStats holds the derived progress figures for a habit
type HabitStats struct {
	TodayCompleted   bool `json:"today_completed"`
	Streak           int  `json:"streak"`
	WeekProgress     int  `json:"week_progress"`
	MonthProgress    int  `json:"month_progress"`
	TotalCompletions int  `json:"total_completions"`
}

// HabitWithStats pairs a habit with its computed stats
type HabitWithStats struct {
	Habit
	Stats HabitStats `json:"stats"`
}

// CreateHabitInput represents the input for creating a new habit
type CreateHabitInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TargetCount int       `json:"target_count"`
	TimeOfDay   string    `json:"time_of_day"`
	Color       string    `json:"color"`
	Frequency   string    `json:"frequency"`
	UserID      uuid.UUID `json:"user_id"`
}

// UpdateHabitInput represents the input for updating a habit
type UpdateHabitInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	TargetCount *int    `json:"target_count,omitempty"`
	TimeOfDay   *string `json:"time_of_day,omitempty"`
	Color       *string `json:"color,omitempty"`
	Frequency   *string `json:"frequency,omitempty"`
}

// BeforeCreate is called before creating a new habit record
func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	h.CreatedAt = time.Now()
	h.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating a habit record
func (h *Habit) BeforeUpdate(tx *gorm.DB) error {
	h.UpdatedAt = time.Now()
	return nil
}
