package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterFixedWindow(t *testing.T) {
	limiter := &rateLimiter{
		clients: make(map[string]*rateWindow),
		max:     3,
		window:  time.Minute,
	}
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.allow("10.0.0.1", now))
	}
	assert.False(t, limiter.allow("10.0.0.1", now.Add(30*time.Second)))

	// Another client has its own window.
	assert.True(t, limiter.allow("10.0.0.2", now))

	// The window resets after it elapses.
	assert.True(t, limiter.allow("10.0.0.1", now.Add(time.Minute)))
}

func TestRateLimitMiddlewareRejectsExcess(t *testing.T) {
	middleware := RateLimitMiddleware(1, time.Minute)
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/okr", nil)
	req.RemoteAddr = "192.0.2.1:4321"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/okr", nil)
	req.RemoteAddr = "192.0.2.1:4321"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 192.0.2.1")

	assert.Equal(t, "203.0.113.7", clientIP(req))

	req.Header.Del("X-Forwarded-For")
	assert.Equal(t, "192.0.2.1", clientIP(req))
}
