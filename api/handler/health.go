package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bhaveshd9/carspec/models"
)

// Health returns a handler for GET /api/v1/health.
//
// Reports service uptime and whether the JavaScript rendering engine is
// available. The endpoint sits outside auth so monitoring probes always
// work.
func Health(rendererAvailable func() bool, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:   "healthy",
			Uptime:   time.Since(startTime).Round(time.Second).String(),
			Renderer: rendererAvailable(),
			Version:  "0.1.0",
		})
	}
}
