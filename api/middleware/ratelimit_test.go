package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bhaveshd9/carspec/config"
	"github.com/bhaveshd9/carspec/models"
)

func limitedRouter(cfg config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(cfg))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	// Zero refill rate: exactly Burst requests succeed.
	r := limitedRouter(config.RateLimitConfig{RequestsPerSecond: 0, Burst: 2})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 after burst exhausted", w.Code)
	}

	var resp models.ScrapeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeRateLimited {
		t.Errorf("error = %+v, want code %s", resp.Error, models.ErrCodeRateLimited)
	}
}

func TestRateLimit_PerIdentityBuckets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Stand-in for the auth middleware setting the caller identity.
	r.Use(func(c *gin.Context) {
		c.Set(identityKey, c.GetHeader("X-API-Key"))
	})
	r.Use(RateLimit(config.RateLimitConfig{RequestsPerSecond: 0, Burst: 1}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(key string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-API-Key", key)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if got := get("alpha"); got != http.StatusOK {
		t.Fatalf("alpha first request: status = %d, want 200", got)
	}
	if got := get("alpha"); got != http.StatusTooManyRequests {
		t.Errorf("alpha second request: status = %d, want 429", got)
	}
	// A different key has its own untouched bucket.
	if got := get("beta"); got != http.StatusOK {
		t.Errorf("beta first request: status = %d, want 200", got)
	}
}

func TestVisitors_SweepDropsIdle(t *testing.T) {
	v := &visitors{buckets: make(map[string]*visitor), rps: 1, burst: 1}
	v.get("stale")
	v.get("fresh")

	v.mu.Lock()
	v.buckets["stale"].lastSeen = time.Now().Add(-time.Hour)
	v.mu.Unlock()

	v.sweep(30 * time.Minute)

	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.buckets["stale"]; ok {
		t.Error("stale bucket survived sweep")
	}
	if _, ok := v.buckets["fresh"]; !ok {
		t.Error("fresh bucket was swept")
	}
}
