package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL      = "https://api.ippriv.com"
	DefaultShareBaseURL = "https://ippriv.com"
)

type Config struct {
	// Upstream API
	BaseURL string
	Timeout time.Duration

	// Client-side rate governor
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Retry is declared but only used when RetryEnabled is set
	RetryEnabled  bool
	RetryAttempts uint
	RetryDelay    time.Duration

	// Lookup
	DemoIP   string // substituted for loopback results of IP detection, empty = off
	MMDBPath string // GeoLite2-ASN database for local enrichment, empty = off

	// Share links
	ShareBaseURL string

	LogLevel slog.Level
}

func Load() *Config {
	return &Config{
		BaseURL: strings.TrimRight(envOrDefault("IPPRIV_API_URL", DefaultBaseURL), "/"),
		Timeout: envIntOrDefault("IPPRIV_TIMEOUT_MS", 10000) * time.Millisecond,

		RateLimitMax:    int(envIntOrDefault("IPPRIV_RATE_LIMIT_MAX", 100)),
		RateLimitWindow: envIntOrDefault("IPPRIV_RATE_LIMIT_WINDOW_MINUTES", 60) * time.Minute,

		RetryEnabled:  envBool("IPPRIV_RETRY_ENABLED"),
		RetryAttempts: uint(envIntOrDefault("IPPRIV_RETRY_ATTEMPTS", 3)),
		RetryDelay:    envIntOrDefault("IPPRIV_RETRY_DELAY_MS", 1000) * time.Millisecond,

		DemoIP:   os.Getenv("IPPRIV_DEMO_IP"),
		MMDBPath: os.Getenv("IPPRIV_MMDB_PATH"),

		ShareBaseURL: strings.TrimRight(envOrDefault("IPPRIV_SHARE_BASE_URL", DefaultShareBaseURL), "/"),

		LogLevel: parseLevel(os.Getenv("IPPRIV_LOG_LEVEL")),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envIntOrDefault returns a bare count; callers multiply by the unit.
func envIntOrDefault(key string, def int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(def)
}

func envBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
