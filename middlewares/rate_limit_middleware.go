package middlewares

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"okrproject/utils"
)

type rateWindow struct {
	start time.Time
	count int
}

type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateWindow
	max     int
	window  time.Duration
}

// RateLimitMiddleware rejects clients exceeding max requests per fixed
// window, keyed by client IP. X-Forwarded-For is honored when set, matching
// a deployment behind a single trusted proxy.
func RateLimitMiddleware(max int, window time.Duration) func(http.Handler) http.Handler {
	limiter := &rateLimiter{
		clients: make(map[string]*rateWindow),
		max:     max,
		window:  window,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(clientIP(r), time.Now()) {
				utils.HandleMessageResponse(w, "Too many requests, please try again later", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *rateLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	win, ok := l.clients[key]
	if !ok || now.Sub(win.start) >= l.window {
		l.clients[key] = &rateWindow{start: now, count: 1}
		return true
	}

	if win.count >= l.max {
		return false
	}

	win.count++
	return true
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
