package models

// ScrapeRequest is the payload for POST /api/v1/scrape.
type ScrapeRequest struct {
	// URL is the manufacturer page to scrape. Required, http or https.
	URL string `json:"url" binding:"required,url"`

	// Timeout is the maximum duration in seconds for the entire
	// scrape operation (fetch + extraction).
	// Default: 30. Max: 120.
	Timeout int `json:"timeout,omitempty" binding:"omitempty,min=1,max=120"`

	// MaxAge enables the response cache: a cached record younger than
	// MaxAge milliseconds is returned without re-fetching the page.
	// 0 (default) bypasses the cache entirely.
	MaxAge int `json:"max_age,omitempty" binding:"omitempty,min=0"`
}

// Defaults applies default values to unset fields.
func (r *ScrapeRequest) Defaults() {
	if r.Timeout == 0 {
		r.Timeout = 30
	}
}
