package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateLifecycle(t *testing.T) {
	store := NewOAuthStateStore()

	state, err := store.GenerateState("google")
	require.NoError(t, err)
	require.NotEmpty(t, state)

	assert.True(t, store.ValidateState(state, "google"))
	assert.False(t, store.ValidateState(state, "google"), "state must be single-use")
}

func TestConsumeStateRecoversSubject(t *testing.T) {
	store := NewOAuthStateStore()

	state, err := store.GenerateStateFor("google", "user-123")
	require.NoError(t, err)

	subject, ok := store.ConsumeState(state, "google")
	require.True(t, ok)
	assert.Equal(t, "user-123", subject)

	_, ok = store.ConsumeState(state, "google")
	assert.False(t, ok)
}

func TestStateRejectsWrongProvider(t *testing.T) {
	store := NewOAuthStateStore()

	state, err := store.GenerateState("google")
	require.NoError(t, err)

	assert.False(t, store.ValidateState(state, "github"))
}

func TestCleanupLoopStopsOnClose(t *testing.T) {
	svc := &OAuthService{
		stateStore:  NewOAuthStateStore(),
		stopCleanup: make(chan struct{}),
	}

	finished := make(chan struct{})
	go func() {
		svc.cleanupLoop()
		close(finished)
	}()

	svc.Close()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop still running after Close")
	}

	assert.NotPanics(t, svc.Close)
}
