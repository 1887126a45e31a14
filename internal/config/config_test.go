package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"IPPRIV_API_URL", "IPPRIV_TIMEOUT_MS", "IPPRIV_RATE_LIMIT_MAX",
		"IPPRIV_RATE_LIMIT_WINDOW_MINUTES", "IPPRIV_RETRY_ENABLED",
		"IPPRIV_RETRY_ATTEMPTS", "IPPRIV_RETRY_DELAY_MS", "IPPRIV_DEMO_IP",
		"IPPRIV_MMDB_PATH", "IPPRIV_SHARE_BASE_URL", "IPPRIV_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, time.Hour, cfg.RateLimitWindow)
	assert.False(t, cfg.RetryEnabled)
	assert.Equal(t, uint(3), cfg.RetryAttempts)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.Empty(t, cfg.DemoIP)
	assert.Equal(t, DefaultShareBaseURL, cfg.ShareBaseURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("IPPRIV_API_URL", "http://localhost:8787/")
	t.Setenv("IPPRIV_TIMEOUT_MS", "250")
	t.Setenv("IPPRIV_RATE_LIMIT_MAX", "5")
	t.Setenv("IPPRIV_RATE_LIMIT_WINDOW_MINUTES", "2")
	t.Setenv("IPPRIV_RETRY_ENABLED", "true")
	t.Setenv("IPPRIV_RETRY_ATTEMPTS", "4")
	t.Setenv("IPPRIV_RETRY_DELAY_MS", "20")
	t.Setenv("IPPRIV_DEMO_IP", "5.50.177.22")
	t.Setenv("IPPRIV_LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, "http://localhost:8787", cfg.BaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, 2*time.Minute, cfg.RateLimitWindow)
	assert.True(t, cfg.RetryEnabled)
	assert.Equal(t, uint(4), cfg.RetryAttempts)
	assert.Equal(t, 20*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, "5.50.177.22", cfg.DemoIP)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadIgnoresGarbage(t *testing.T) {
	t.Setenv("IPPRIV_TIMEOUT_MS", "soon")
	t.Setenv("IPPRIV_RATE_LIMIT_MAX", "-3")
	t.Setenv("IPPRIV_RETRY_ENABLED", "maybe")
	t.Setenv("IPPRIV_LOG_LEVEL", "loud")

	cfg := Load()
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.False(t, cfg.RetryEnabled)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}
