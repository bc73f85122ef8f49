package middleware

import (
	"net/http"
	"sync"

	"gposync/internal/gpodder"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP. The least recently seen
// clients are evicted once size is reached.
type RateLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// NewRateLimiter returns nil when r <= 0; a nil limiter allows everything.
func NewRateLimiter(r float64, burst, size int) (*RateLimiter, error) {
	if r <= 0 {
		return nil, nil
	}
	if burst < 1 {
		burst = 1
	}
	if size < 1 {
		size = 1024
	}
	cache, err := lru.New[string, *rate.Limiter](size)
	if err != nil {
		return nil, err
	}
	return &RateLimiter{limiters: cache, rate: rate.Limit(r), burst: burst}, nil
}

func (rl *RateLimiter) Allow(key string) bool {
	if rl == nil {
		return true
	}
	rl.mu.Lock()
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	rl.mu.Unlock()
	return limiter.Allow()
}

// RateLimit rejects requests over the client's budget with 429.
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			AbortWithError(c, gpodder.NewError(http.StatusTooManyRequests, "Too many requests"))
			return
		}
		c.Next()
	}
}

// RateLimitSection applies RateLimit only to routes of the given section.
func RateLimitSection(rl *RateLimiter, section gpodder.Section) gin.HandlerFunc {
	limit := RateLimit(rl)
	return func(c *gin.Context) {
		if route, ok := CurrentRoute(c); ok && route.Section == section {
			limit(c)
			return
		}
		c.Next()
	}
}
