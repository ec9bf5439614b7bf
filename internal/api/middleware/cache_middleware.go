package middleware

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResponseStore is the cache surface the middleware needs; satisfied
// by cache.RedisClient
type ResponseStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	ClearByPattern(ctx context.Context, pattern string) error
}

// CacheMiddleware caches GET responses and clears matching entries
// after successful mutations. Keys are scoped per user so one user's
// cached lists never leak to another.
type CacheMiddleware struct {
	cache  ResponseStore
	prefix string
	ttl    time.Duration
}

func NewCacheMiddleware(store ResponseStore, prefix string, ttl time.Duration) *CacheMiddleware {
	return &CacheMiddleware{
		cache:  store,
		prefix: prefix,
		ttl:    ttl,
	}
}

// bodyRecorder tees the response body so it can be stored after the
// handler has written it
type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) WriteString(s string) (int, error) {
	r.buf.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

// CacheResponse serves GET requests from redis when a fresh entry
// exists, otherwise records the handler's body and stores it
func (m *CacheMiddleware) CacheResponse() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := m.requestKey(c)

		if body, err := m.cache.Get(c, key); err == nil && body != "" {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(body))
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		c.Writer = rec.ResponseWriter
		if rec.Status() != http.StatusOK {
			return
		}
		if err := m.cache.Set(c, key, rec.buf.String(), m.ttl); err != nil {
			log.Error("Failed to cache response", zap.Error(err), zap.String("key", key))
		}
	}
}

// CacheInvalidate clears cached entries matching the given patterns
// once the wrapped mutation has succeeded
func (m *CacheMiddleware) CacheInvalidate(patterns ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		for _, pattern := range patterns {
			if err := m.cache.ClearByPattern(c, m.prefix+":"+pattern); err != nil {
				log.Error("Failed to invalidate cache", zap.Error(err), zap.String("pattern", pattern))
			}
		}
	}
}

// requestKey builds prefix:resource:{list|id:<uuid>}[:query][:user]
func (m *CacheMiddleware) requestKey(c *gin.Context) string {
	parts := []string{m.prefix}

	segments := strings.Split(strings.Trim(c.Request.URL.Path, "/"), "/")
	if len(segments) >= 2 {
		parts = append(parts, segments[1])
		if len(segments) == 2 {
			parts = append(parts, "list")
		}
		for _, seg := range segments[2:] {
			if _, err := uuid.Parse(seg); err == nil {
				parts = append(parts, "id", seg)
			} else {
				parts = append(parts, seg)
			}
		}
	}

	if q := c.Request.URL.RawQuery; q != "" {
		parts = append(parts, q)
	}
	if userID, ok := GetUserID(c); ok {
		parts = append(parts, userID.String())
	}

	return strings.Join(parts, ":")
}
