package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	Browser   BrowserConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls the page fetch layer.
type FetchConfig struct {
	// Timeout is the deadline for a single fetch attempt.
	Timeout time.Duration // default: 60s

	// MaxRedirects caps the redirect chain per request.
	MaxRedirects int // default: 5

	// MaxRetries is the number of attempts for transient failures
	// (HTTP 429/500/502/503/504 and transport errors).
	MaxRetries int // default: 3

	// RetryBackoff is the base backoff, doubled after each failed attempt.
	RetryBackoff time.Duration // default: 1s

	// JitterMin and JitterMax bound the random pre-fetch delay used to
	// avoid bot detection. Both zero disables the delay.
	JitterMin time.Duration // default: 0
	JitterMax time.Duration // default: 0
}

// BrowserConfig controls the optional Rod rendering engine.
type BrowserConfig struct {
	// Enabled toggles JavaScript rendering. When false the fetcher
	// returns statically parsed text only.
	Enabled bool // default: false

	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent tabs).
	MaxPages int // default: 5

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per API key.
	Burst int // default: 5
}

// CacheConfig controls the scrape response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached records.
	MaxEntries int // default: 500
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("CARSPEC_HOST", "0.0.0.0"),
			Port: envIntOr("CARSPEC_PORT", 8080),
			Mode: envOr("CARSPEC_MODE", "release"),
		},
		Fetch: FetchConfig{
			Timeout:      envDurationOr("CARSPEC_FETCH_TIMEOUT", 60*time.Second),
			MaxRedirects: envIntOr("CARSPEC_MAX_REDIRECTS", 5),
			MaxRetries:   envIntOr("CARSPEC_MAX_RETRIES", 3),
			RetryBackoff: envDurationOr("CARSPEC_RETRY_BACKOFF", time.Second),
			JitterMin:    envDurationOr("CARSPEC_JITTER_MIN", 0),
			JitterMax:    envDurationOr("CARSPEC_JITTER_MAX", 0),
		},
		Browser: BrowserConfig{
			Enabled:    envBoolOr("CARSPEC_BROWSER_ENABLED", false),
			Headless:   envBoolOr("CARSPEC_HEADLESS", true),
			MaxPages:   envIntOr("CARSPEC_MAX_PAGES", 5),
			NoSandbox:  envBoolOr("CARSPEC_NO_SANDBOX", false),
			BrowserBin: os.Getenv("CARSPEC_BROWSER_BIN"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("CARSPEC_AUTH_ENABLED", false),
			APIKeys: envSliceOr("CARSPEC_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("CARSPEC_RATE_RPS", 2.0),
			Burst:             envIntOr("CARSPEC_RATE_BURST", 5),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("CARSPEC_CACHE_MAX_ENTRIES", 500),
		},
		Log: LogConfig{
			Level:  envOr("CARSPEC_LOG_LEVEL", "info"),
			Format: envOr("CARSPEC_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
