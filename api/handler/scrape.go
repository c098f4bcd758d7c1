package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bhaveshd9/carspec/cache"
	"github.com/bhaveshd9/carspec/extract"
	"github.com/bhaveshd9/carspec/models"
)

// Scrape returns a handler for POST /api/v1/scrape.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Cache lookup (when the request sets max_age).
//  3. Extractor.Scrape → VehicleRecord (records fetch+extraction timing).
//  4. Cache store, fill Timing, return 200.
func Scrape(ex *extract.Extractor, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ScrapeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		if cc != nil && req.MaxAge > 0 {
			if record, hit := cc.Get(req.URL, req.MaxAge); hit {
				c.JSON(http.StatusOK, models.ScrapeResponse{
					Success:     true,
					CarData:     record,
					CacheStatus: "hit",
					Timing: models.TimingInfo{
						TotalMs: time.Since(totalStart).Milliseconds(),
					},
				})
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(),
			time.Duration(req.Timeout)*time.Second)
		defer cancel()

		record, stats, err := ex.Scrape(ctx, req.URL)
		if err != nil {
			respondError(c, err, models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
				FetchMs: stats.FetchMs,
			})
			return
		}

		fetchMethod := "http"
		if stats.Rendered {
			fetchMethod = "browser"
		}

		resp := models.ScrapeResponse{
			Success:     true,
			CarData:     record,
			FetchMethod: fetchMethod,
			Timing: models.TimingInfo{
				TotalMs:      time.Since(totalStart).Milliseconds(),
				FetchMs:      stats.FetchMs,
				ExtractionMs: stats.ExtractionMs,
			},
		}

		if cc != nil && req.MaxAge > 0 {
			cc.Set(req.URL, record)
			resp.CacheStatus = "miss"
		}

		c.JSON(http.StatusOK, resp)
	}
}

// respondError maps a ScrapeError to the correct HTTP status code and
// writes a structured JSON error response.
func respondError(c *gin.Context, err error, timing models.TimingInfo) {
	var scrapeErr *models.ScrapeError
	if !errors.As(err, &scrapeErr) {
		scrapeErr = models.NewScrapeError(models.ErrCodeInternal, err.Error(), nil)
	}

	status := http.StatusInternalServerError
	switch scrapeErr.Code {
	case models.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case models.ErrCodeFetchFailed, models.ErrCodeBlockedPage:
		status = http.StatusBadGateway
	}

	c.JSON(status, models.ScrapeResponse{
		Success: false,
		Error:   scrapeErr.ToDetail(),
		Timing:  timing,
	})
}
