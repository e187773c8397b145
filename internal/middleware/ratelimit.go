package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/AyaBm214/PremiumConnect/internal/ui"
	"github.com/dgraph-io/ristretto/v2"
)

// window counts the requests of one client in the current interval.
type window struct {
	start time.Time
	count int
}

// RateLimiter allows limit requests per client per fixed window. Counters
// expire from the cache together with their window.
type RateLimiter struct {
	mu      sync.Mutex
	windows *ristretto.Cache[string, *window]
	limit   int
	period  time.Duration
	now     func() time.Time
}

func NewRateLimiter(limit int, period time.Duration, maxClients int64) (*RateLimiter, error) {
	windows, err := ristretto.NewCache(&ristretto.Config[string, *window]{
		NumCounters:        maxClients * 10,
		MaxCost:            maxClients,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &RateLimiter{
		windows: windows,
		limit:   limit,
		period:  period,
		now:     time.Now,
	}, nil
}

// Allow records a request from client and reports whether it is within the limit.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	win, ok := rl.windows.Get(client)
	if !ok || now.Sub(win.start) >= rl.period {
		win = &window{start: now}
		if rl.windows.SetWithTTL(client, win, 1, rl.period) {
			rl.windows.Wait()
		}
	}

	if win.count >= rl.limit {
		return false
	}
	win.count++
	return true
}

func (rl *RateLimiter) Close() {
	rl.windows.Close()
}

// Limit rejects clients over the limit with 429.
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := getClientIP(r)
		if !rl.Allow(ip) {
			slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			ui.Error(w, http.StatusTooManyRequests, "too many requests, please try again later")
			return
		}
		next(w, r)
	}
}

// getClientIP extracts real client IP from request
func getClientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
