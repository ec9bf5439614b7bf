package middleware

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gingzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelmonteirotf/habitus-app/internal/infrastructure/cache"
)

type fakeStore struct {
	entries map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]string)}
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.entries[key]
	if !ok {
		return "", cache.ErrCacheNotFound
	}
	return value, nil
}

func (f *fakeStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.entries[key] = value
	return nil
}

func (f *fakeStore) ClearByPattern(ctx context.Context, pattern string) error {
	f.entries = make(map[string]string)
	return nil
}

func setUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

// newCachedListRouter mirrors the production registration order: gzip
// wraps the cache recorder so stored bodies are never compressed.
func newCachedListRouter(store *fakeStore, userID uuid.UUID, hits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewCacheMiddleware(store, "habitus", time.Minute)

	router := gin.New()
	router.GET("/api/habits",
		setUser(userID),
		gingzip.Gzip(gingzip.DefaultCompression),
		m.CacheResponse(),
		func(c *gin.Context) {
			*hits++
			c.JSON(http.StatusOK, gin.H{"data": []string{"Ler", "Correr"}})
		})
	return router
}

func gzipGet(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func gunzipBody(t *testing.T, w *httptest.ResponseRecorder) []byte {
	t.Helper()
	gr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	defer gr.Close()
	body, err := io.ReadAll(gr)
	require.NoError(t, err)
	return body
}

func TestCacheResponseStoresUncompressedBody(t *testing.T) {
	store := newFakeStore()
	hits := 0
	router := newCachedListRouter(store, uuid.New(), &hits)

	w := gzipGet(t, router, "/api/habits")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	require.Len(t, store.entries, 1)
	for _, stored := range store.entries {
		var payload map[string]any
		require.NoError(t, json.Unmarshal([]byte(stored), &payload),
			"stored entry must be plain JSON")
	}
}

func TestCacheHitStaysDecodableThroughGzip(t *testing.T) {
	store := newFakeStore()
	hits := 0
	router := newCachedListRouter(store, uuid.New(), &hits)

	first := gzipGet(t, router, "/api/habits")
	require.Equal(t, http.StatusOK, first.Code)

	second := gzipGet(t, router, "/api/habits")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, hits, "second request must be served from the cache")
	assert.Equal(t, "gzip", second.Header().Get("Content-Encoding"))

	var payload map[string][]string
	require.NoError(t, json.Unmarshal(gunzipBody(t, second), &payload))
	assert.Equal(t, []string{"Ler", "Correr"}, payload["data"])
}

func TestCacheHitServesPlainClients(t *testing.T) {
	store := newFakeStore()
	hits := 0
	router := newCachedListRouter(store, uuid.New(), &hits)

	first := gzipGet(t, router, "/api/habits")
	require.Equal(t, http.StatusOK, first.Code)

	// A client without gzip support still gets readable JSON on a hit
	req := httptest.NewRequest(http.MethodGet, "/api/habits", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Encoding"))

	var payload map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, []string{"Ler", "Correr"}, payload["data"])
}

func TestCacheKeysAreScopedPerUser(t *testing.T) {
	store := newFakeStore()
	hits := 0
	first := newCachedListRouter(store, uuid.New(), &hits)
	second := newCachedListRouter(store, uuid.New(), &hits)

	require.Equal(t, http.StatusOK, gzipGet(t, first, "/api/habits").Code)
	require.Equal(t, http.StatusOK, gzipGet(t, second, "/api/habits").Code)

	assert.Equal(t, 2, hits, "different users must not share cache entries")
	assert.Len(t, store.entries, 2)
}
