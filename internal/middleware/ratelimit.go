package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per key (client IP). Buckets idle for
// longer than the cache expiry are dropped.
type IPRateLimiter struct {
	limiters *gocache.Cache
	rps      rate.Limit
	burst    int
}

func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: gocache.New(10*time.Minute, 20*time.Minute),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (r *IPRateLimiter) limiter(key string) *rate.Limiter {
	if v, found := r.limiters.Get(key); found {
		r.limiters.SetDefault(key, v)
		return v.(*rate.Limiter)
	}
	l := rate.NewLimiter(r.rps, r.burst)
	// Add fails when a concurrent request created the bucket first
	if err := r.limiters.Add(key, l, gocache.DefaultExpiration); err != nil {
		if v, found := r.limiters.Get(key); found {
			return v.(*rate.Limiter)
		}
	}
	return l
}

func (r *IPRateLimiter) Allow(key string) bool {
	return r.limiter(key).Allow()
}

// RateLimit returns a middleware that limits by client IP.
func RateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded", "kind": "rate_limited"})
			return
		}
		c.Next()
	}
}
