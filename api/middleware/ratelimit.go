package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/bhaveshd9/carspec/config"
	"github.com/bhaveshd9/carspec/models"
)

// visitors tracks one token bucket per caller identity (API key when
// authenticated, client IP otherwise).
type visitors struct {
	mu      sync.Mutex
	buckets map[string]*visitor
	rps     rate.Limit
	burst   int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func (v *visitors) get(identity string) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()
	b, ok := v.buckets[identity]
	if !ok {
		b = &visitor{limiter: rate.NewLimiter(v.rps, v.burst)}
		v.buckets[identity] = b
	}
	b.lastSeen = time.Now()
	return b.limiter
}

// sweep drops buckets idle longer than maxIdle. Scrapes are slow
// operations, so a caller gone half an hour is gone.
func (v *visitors) sweep(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)
	v.mu.Lock()
	defer v.mu.Unlock()
	for id, b := range v.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(v.buckets, id)
		}
	}
}

// RateLimit returns per-identity token-bucket rate limiting middleware.
// A background sweep every 10 minutes bounds the bucket map.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	v := &visitors{
		buckets: make(map[string]*visitor),
		rps:     rate.Limit(cfg.RequestsPerSecond),
		burst:   cfg.Burst,
	}

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			v.sweep(30 * time.Minute)
		}
	}()

	return func(c *gin.Context) {
		identity := c.GetString(identityKey)
		if identity == "" {
			identity = c.ClientIP()
		}

		if !v.get(identity).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ScrapeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeRateLimited,
					Message: "scrape rate limit exceeded for this API key or IP",
				},
			})
			return
		}

		c.Next()
	}
}
