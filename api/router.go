package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bhaveshd9/carspec/api/handler"
	"github.com/bhaveshd9/carspec/api/middleware"
	"github.com/bhaveshd9/carspec/cache"
	"github.com/bhaveshd9/carspec/config"
	"github.com/bhaveshd9/carspec/extract"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(ex *extract.Extractor, rendererAvailable func() bool, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(rendererAvailable, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/scrape", handler.Scrape(ex, cc))

	return r
}
