package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_CAPACITY", "RATE_LIMIT_REFILL_TOKENS",
		"RATE_LIMIT_REFILL_INTERVAL", "RATE_LIMIT_TTL", "RATE_LIMIT_KEY_STRATEGY",
		"RATE_LIMIT_PREFIX",
	} {
		t.Setenv(k, "")
	}

	cfg := LoadRateLimitConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 60, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Minute, cfg.TTL)
	assert.Equal(t, "ip_route", cfg.KeyStrategy)
	assert.Equal(t, "rl", cfg.Prefix)
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-1")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s") // below 5x the refill interval

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_BOOL", "off")
	assert.False(t, envBool("X_BOOL", true))
	t.Setenv("X_BOOL", "not-a-bool")
	assert.True(t, envBool("X_BOOL", true))

	t.Setenv("X_INT", "17")
	assert.Equal(t, 17, envInt("X_INT", 3))
	t.Setenv("X_INT", "oops")
	assert.Equal(t, 3, envInt("X_INT", 3))

	t.Setenv("X_DUR", "250ms")
	assert.Equal(t, 250*time.Millisecond, envDur("X_DUR", time.Second))

	t.Setenv("X_LIST", "9, 10,12")
	assert.Equal(t, []int{9, 10, 12}, envIntList("X_LIST", nil))
	t.Setenv("X_LIST", "")
	assert.Equal(t, []int{9, 10}, envIntList("X_LIST", []int{9, 10}))
}
