package middleware

import (
	"net/http"
	"sync"
	"time"

	"voyago/pkg/logger"
)

type UserExtractor func(r *http.Request) string

// UserRateLimiter applies a sliding-window request limit per resolved
// user. Anonymous requests are not limited here; read endpoints are
// cheap and carry no identity.
type UserRateLimiter struct {
	mu        sync.RWMutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	extractor UserExtractor
	log       *logger.Logger
	stopCh    chan struct{}
}

func NewUserRateLimiter(limit int, window time.Duration, extractor UserExtractor, log *logger.Logger) *UserRateLimiter {
	limiter := &UserRateLimiter{
		requests:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		extractor: extractor,
		log:       log,
		stopCh:    make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func DefaultUserExtractor(r *http.Request) string {
	return r.Header.Get(UserIDHeader)
}

func (rl *UserRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for user, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, user)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *UserRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *UserRateLimiter) Allow(userID string) bool {
	if userID == "" {
		return true
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := rl.requests[userID][:0:0]
	for _, ts := range rl.requests[userID] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[userID] = valid
		return false
	}

	rl.requests[userID] = append(valid, now)
	return true
}

func UserRateLimit(limiter *UserRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := ""
			if limiter.extractor != nil {
				userID = limiter.extractor(r)
			}

			if userID == "" || limiter.Allow(userID) {
				next.ServeHTTP(w, r)
				return
			}

			limiter.log.Warn("Rate limit exceeded",
				"request_id", requestIDFromContext(r.Context()),
				"user_id", userID,
				"path", r.URL.Path,
			)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Too many requests"}`))
		})
	}
}
