package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bhaveshd9/carspec/models"
)

// identityKey is the gin context key under which Auth stores the caller's
// API key. RateLimit reads it to bucket authenticated callers per key.
const identityKey = "api_key"

// Auth returns API-key authentication middleware. Callers present the key
// either as `X-API-Key: <key>` or `Authorization: Bearer <key>`.
// With no keys configured the middleware is a no-op (open access).
func Auth(apiKeys []string) gin.HandlerFunc {
	if len(apiKeys) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	known := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			known[k] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		key := requestAPIKey(c)
		if key == "" {
			rejectUnauthorized(c, "API key required: send X-API-Key or Authorization: Bearer <key>")
			return
		}
		if _, ok := known[key]; !ok {
			rejectUnauthorized(c, "API key not recognized")
			return
		}

		c.Set(identityKey, key)
		c.Next()
	}
}

func rejectUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ScrapeResponse{
		Success: false,
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeUnauthorized,
			Message: message,
		},
	})
}

// requestAPIKey reads X-API-Key first, then the Bearer scheme.
func requestAPIKey(c *gin.Context) string {
	if key := c.GetHeader("X-API-Key"); key != "" {
		return key
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
