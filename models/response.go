package models

// TimingInfo reports how long each phase of the request took.
type TimingInfo struct {
	TotalMs      int64 `json:"total_ms"`
	FetchMs      int64 `json:"fetch_ms,omitempty"`
	ExtractionMs int64 `json:"extraction_ms,omitempty"`
}

// ScrapeResponse is the body for POST /api/v1/scrape.
type ScrapeResponse struct {
	Success bool           `json:"success"`
	CarData *VehicleRecord `json:"carData,omitempty"`
	Error   *ErrorDetail   `json:"error,omitempty"`

	// FetchMethod records how the page text was obtained: "http" or "browser".
	FetchMethod string `json:"fetch_method,omitempty"`

	// CacheStatus is "hit" or "miss" when the request enabled caching.
	CacheStatus string `json:"cache_status,omitempty"`

	Timing TimingInfo `json:"timing"`
}

// HealthResponse is the body for GET /api/v1/health.
type HealthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Renderer bool   `json:"renderer_available"`
	Version  string `json:"version"`
}
