package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account in the system
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Email        string     `json:"email" gorm:"uniqueIndex:idx_user_email,where:deleted_at is null;not null"`
	Name         string     `json:"name" gorm:"not null"`
	AvatarURL    string     `json:"avatar_url,omitempty" gorm:"size:512"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Timezone     string     `json:"timezone" gorm:"not null;default:'America/Sao_Paulo'"`
	IsActive     bool       `json:"is_active" gorm:"default:true;index:idx_user_active"`
	CreatedAt    time.Time  `json:"created_at" gorm:"index:idx_user_created"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	// Google Calendar integration. The access token is used as a bearer
	// token for event sync; the refresh token is stored so a future
	// re-consent is not needed, but no automatic refresh is performed.
	GoogleCalendarToken string     `json:"-" gorm:"column:google_calendar_token"`
	GoogleRefreshToken  string     `json:"-" gorm:"column:google_refresh_token"`
	GoogleTokenExpiry   *time.Time `json:"-" gorm:"column:google_token_expiry"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is called before creating a new user record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating a user record
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// CalendarConnected reports whether the user has a stored Google
// Calendar access token
func (u *User) CalendarConnected() bool {
	return u.GoogleCalendarToken != ""
}
