package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// attemptLimiter tracks failed attempts per key inside a sliding window.
// Used to slow down verification-code guessing.
type attemptLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{attempts: make(map[string][]time.Time)}
}

func (limiter *attemptLimiter) tooManyRecent(key string, now time.Time, limit int, window time.Duration) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	return len(limiter.pruneLocked(key, now, window)) >= limit
}

func (limiter *attemptLimiter) addFailure(key string, now time.Time, window time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	recent := limiter.pruneLocked(key, now, window)
	limiter.attempts[key] = append(recent, now)
}

func (limiter *attemptLimiter) reset(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.attempts, key)
}

func (limiter *attemptLimiter) pruneLocked(key string, now time.Time, window time.Duration) []time.Time {
	values := limiter.attempts[key]
	if len(values) == 0 {
		return []time.Time{}
	}

	threshold := now.Add(-window)
	recent := make([]time.Time, 0, len(values))
	for _, value := range values {
		if value.After(threshold) {
			recent = append(recent, value)
		}
	}

	if len(recent) == 0 {
		delete(limiter.attempts, key)
		return []time.Time{}
	}
	limiter.attempts[key] = recent
	return recent
}

func requestLimiterKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
