package cache

import (
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClientRequiresAddr(t *testing.T) {
	client, err := NewRedisClient(&Config{})

	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, client)
}

func TestHealthCheckLoopStopsOnClose(t *testing.T) {
	r := &RedisClient{
		client: redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}),
		config: DefaultConfig(),
		done:   make(chan struct{}),
	}

	finished := make(chan struct{})
	go func() {
		r.healthCheckLoop()
		close(finished)
	}()

	require.NoError(t, r.Close())

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("health check loop still running after Close")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	r := &RedisClient{
		client: redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}),
		config: DefaultConfig(),
		done:   make(chan struct{}),
	}

	require.NoError(t, r.Close())
	assert.NotPanics(t, func() { _ = r.Close() })
}
