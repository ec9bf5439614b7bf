package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "samuel@example.com", testSecret, "habitus", 24)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "samuel@example.com", claims.Email)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "samuel@example.com", testSecret, "habitus", 24)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestTokenBlacklist(t *testing.T) {
	blacklist := NewTokenBlacklist()

	assert.False(t, blacklist.IsBlacklisted("token-a"))

	blacklist.AddToBlacklist("token-a", time.Now().Add(time.Hour))
	assert.True(t, blacklist.IsBlacklisted("token-a"))
	assert.False(t, blacklist.IsBlacklisted("token-b"))
}

func TestOAuthStateStoreConsume(t *testing.T) {
	store := NewOAuthStateStore()

	state, err := store.GenerateStateFor("google", "user-123")
	require.NoError(t, err)

	subject, ok := store.ConsumeState(state, "google")
	assert.True(t, ok)
	assert.Equal(t, "user-123", subject)

	// Single use
	_, ok = store.ConsumeState(state, "google")
	assert.False(t, ok)
}

func TestOAuthStateStoreProviderMismatch(t *testing.T) {
	store := NewOAuthStateStore()

	state, err := store.GenerateStateFor("google", "user-123")
	require.NoError(t, err)

	_, ok := store.ConsumeState(state, "github")
	assert.False(t, ok)
}
