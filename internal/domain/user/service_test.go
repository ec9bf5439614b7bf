package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeRepository struct {
	users map[uuid.UUID]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[uuid.UUID]*User)}
}

func (f *fakeRepository) Create(ctx context.Context, user *User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) Update(ctx context.Context, user *User) error {
	if _, ok := f.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeRepository) UpdateCalendarTokens(ctx context.Context, id uuid.UUID, accessToken, refreshToken string, expiry *time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.GoogleCalendarToken = accessToken
	user.GoogleRefreshToken = refreshToken
	user.GoogleTokenExpiry = expiry
	return nil
}

func registerUser(t *testing.T, svc Service) *User {
	t.Helper()
	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "samuel@example.com",
		Name:     "Samuel",
		Password: "secret123",
	})
	require.NoError(t, err)
	return user
}

func TestCreateUser(t *testing.T) {
	svc := NewService(newFakeRepository())

	user := registerUser(t, svc)

	assert.Equal(t, "samuel@example.com", user.Email)
	assert.Equal(t, "America/Sao_Paulo", user.Timezone)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.PasswordHash, "password must be hashed")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepository())
	registerUser(t, svc)

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "samuel@example.com",
		Name:     "Outro",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestCreateUserShortPassword(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "samuel@example.com",
		Name:     "Samuel",
		Password: "12345",
	})

	assert.Error(t, err)
}

func TestAuthenticateUser(t *testing.T) {
	svc := NewService(newFakeRepository())
	registerUser(t, svc)

	user, err := svc.AuthenticateUser(context.Background(), "samuel@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "samuel@example.com", user.Email)

	_, err = svc.AuthenticateUser(context.Background(), "samuel@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.AuthenticateUser(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	user := registerUser(t, svc)

	repo.users[user.ID].IsActive = false

	_, err := svc.AuthenticateUser(context.Background(), "samuel@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestUpdateUserAvatar(t *testing.T) {
	svc := NewService(newFakeRepository())
	created := registerUser(t, svc)

	avatar := "https://cdn.example.com/avatars/samuel.png"
	updated, err := svc.UpdateUser(context.Background(), created.ID, UpdateUserInput{
		AvatarURL: &avatar,
	})

	require.NoError(t, err)
	assert.Equal(t, avatar, updated.AvatarURL)
	assert.Equal(t, created.Email, updated.Email)
}

func TestUpdatePassword(t *testing.T) {
	svc := NewService(newFakeRepository())
	user := registerUser(t, svc)

	err := svc.UpdatePassword(context.Background(), user.ID, "wrong", "newsecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.UpdatePassword(context.Background(), user.ID, "secret123", "newsecret")
	require.NoError(t, err)

	_, err = svc.AuthenticateUser(context.Background(), "samuel@example.com", "newsecret")
	assert.NoError(t, err)
}

func TestCalendarTokenLifecycle(t *testing.T) {
	svc := NewService(newFakeRepository())
	user := registerUser(t, svc)

	// Not connected yet
	_, err := svc.CalendarAccessToken(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrCalendarNotLinked)

	connected, err := svc.IsCalendarConnected(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, connected)

	// Connect
	err = svc.StoreCalendarTokens(context.Background(), user.ID, &oauth2.Token{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-abc",
		Expiry:       time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	token, err := svc.CalendarAccessToken(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "access-abc", token)

	connected, err = svc.IsCalendarConnected(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, connected)

	// Disconnect
	require.NoError(t, svc.DisconnectCalendar(context.Background(), user.ID))

	_, err = svc.CalendarAccessToken(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrCalendarNotLinked)
}

func TestStoreCalendarTokensRejectsEmpty(t *testing.T) {
	svc := NewService(newFakeRepository())
	user := registerUser(t, svc)

	assert.Error(t, svc.StoreCalendarTokens(context.Background(), user.ID, nil))
	assert.Error(t, svc.StoreCalendarTokens(context.Background(), user.ID, &oauth2.Token{}))
}
