package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

var log = logrus.New()

// Input types
type CreateUserInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Timezone string `json:"timezone,omitempty"`
}

type UpdateUserInput struct {
	Email     *string `json:"email,omitempty"`
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Password  *string `json:"password,omitempty"`
	Timezone  *string `json:"timezone,omitempty"`
}

// Common errors
var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrCalendarNotLinked  = errors.New("google calendar is not connected")
)

// Service interface
type Service interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	AuthenticateUser(ctx context.Context, email, password string) (*User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error

	// Google Calendar token management
	StoreCalendarTokens(ctx context.Context, id uuid.UUID, token *oauth2.Token) error
	CalendarAccessToken(ctx context.Context, id uuid.UUID) (string, error)
	IsCalendarConnected(ctx context.Context, id uuid.UUID) (bool, error)
	DisconnectCalendar(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// validateCreateUserInput validates the input for creating a user
func validateCreateUserInput(input CreateUserInput) error {
	if input.Email == "" {
		return errors.New("email is required")
	}
	if input.Name == "" {
		return errors.New("name is required")
	}
	if input.Password == "" {
		return errors.New("password is required")
	}
	if len(input.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

// CreateUser creates a new user with the given input
func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	if err := validateCreateUserInput(input); err != nil {
		return nil, err
	}

	existingUser, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("checking email existence: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = "America/Sao_Paulo"
	}

	user := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hashedPassword),
		Timezone:     timezone,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	log.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Email != nil && *input.Email != user.Email {
		existingUser, err := s.repo.FindByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if existingUser != nil {
			return nil, ErrEmailExists
		}
		user.Email = *input.Email
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if input.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashedPassword)
	}

	if input.Timezone != nil {
		user.Timezone = *input.Timezone
	}

	user.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// AuthenticateUser verifies credentials and returns the user on success
func (s *service) AuthenticateUser(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *service) UpdatePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user.PasswordHash = string(hashedPassword)
	user.UpdatedAt = time.Now()
	return s.repo.Update(ctx, user)
}

// StoreCalendarTokens persists the OAuth token pair obtained from the
// Google consent flow
func (s *service) StoreCalendarTokens(ctx context.Context, id uuid.UUID, token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return errors.New("missing access token")
	}

	var expiry *time.Time
	if !token.Expiry.IsZero() {
		e := token.Expiry
		expiry = &e
	}

	if err := s.repo.UpdateCalendarTokens(ctx, id, token.AccessToken, token.RefreshToken, expiry); err != nil {
		return err
	}

	log.WithField("user_id", id).Info("Google Calendar connected")
	return nil
}

// CalendarAccessToken returns the stored Google access token for the user
func (s *service) CalendarAccessToken(ctx context.Context, id uuid.UUID) (string, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !user.CalendarConnected() {
		return "", ErrCalendarNotLinked
	}
	return user.GoogleCalendarToken, nil
}

func (s *service) IsCalendarConnected(ctx context.Context, id uuid.UUID) (bool, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user.CalendarConnected(), nil
}

// DisconnectCalendar clears the stored token pair
func (s *service) DisconnectCalendar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.UpdateCalendarTokens(ctx, id, "", "", nil); err != nil {
		return err
	}
	log.WithField("user_id", id).Info("Google Calendar disconnected")
	return nil
}
