package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RateLimitExceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim := New(0, time.Minute) // limit 0 -> always deny
	r := gin.New()
	r.Use(Middleware(lim, "vote"))
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 429, w.Code)
	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, "Rate limit exceeded. Try again later.", body["error"])
	require.Equal(t, "RATE_LIMITED", body["code"])
	require.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestMiddleware_AllowsWithinBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim := New(2, time.Hour)
	r := gin.New()
	r.Use(Middleware(lim, ""))
	r.GET("/", func(c *gin.Context) { c.Status(200) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		codes = append(codes, w.Code)
	}
	require.Equal(t, []int{200, 200, 429}, codes)
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis unavailable")
}

func TestMiddleware_FailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(brokenLimiter{}, "join"))
	r.GET("/", func(c *gin.Context) { c.Status(204) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, 204, w.Code)
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	lim := New(1, time.Hour)
	ctx := context.Background()

	ok, _ := lim.Allow(ctx, "a")
	require.True(t, ok)
	ok, _ = lim.Allow(ctx, "a")
	require.False(t, ok)
	ok, _ = lim.Allow(ctx, "b")
	require.True(t, ok)

	lim.Reset("a")
	ok, _ = lim.Allow(ctx, "a")
	require.True(t, ok)

	lim.Cleanup(-time.Second)
	require.Empty(t, lim.limiters)
}
