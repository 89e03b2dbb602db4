package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter enforces a per-client-IP request budget over a sliding window.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimiterEntry
	limit   rate.Limit
	burst   int
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows maxRequests per window for each client IP.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*rateLimiterEntry),
		limit:   rate.Every(window / time.Duration(maxRequests)),
		burst:   maxRequests,
	}
}

func (r *RateLimiter) limiter(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.clients[ip]
	if !ok {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.clients[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// PruneIdle drops entries for clients not seen within maxIdle. A client idle
// for the full window has a replenished budget, so dropping its entry does
// not change what it is allowed.
func (r *RateLimiter) PruneIdle(maxIdle time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	for ip, entry := range r.clients {
		if entry.lastSeen.Before(cutoff) {
			delete(r.clients, ip)
		}
	}
}

// Handler returns the gin middleware.
func (r *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests from this IP, please try again later.",
			})
			return
		}
		c.Next()
	}
}
