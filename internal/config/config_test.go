package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "fa_", cfg.DB.Prefix)
	assert.Equal(t, 100, cfg.Listing.MaxLimit)
	assert.Equal(t, []string{"*"}, cfg.App.CORSOrigins)
	assert.Equal(t, "participant.registered", cfg.AMQP.Queue)
	assert.False(t, cfg.AMQP.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("APP_TIMEZONE", "Asia/Shanghai")
	t.Setenv("DB_PREFIX", "ev_")
	t.Setenv("LIST_MAX_LIMIT", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("RATE_LIMIT_BURST", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, "ev_", cfg.DB.Prefix)
	assert.Equal(t, 0, cfg.Listing.MaxLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSOrigins)
	assert.Equal(t, 5, cfg.RateLimit.Capacity)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Shanghai", loc.String())
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{name: "port not a number", key: "APP_PORT", val: "http"},
		{name: "port out of range", key: "APP_PORT", val: "70000"},
		{name: "negative max limit", key: "LIST_MAX_LIMIT", val: "-1"},
		{name: "unknown timezone", key: "APP_TIMEZONE", val: "Mars/Olympus"},
		{name: "bad duration", key: "DB_CONN_MAX_LIFETIME", val: "soon"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestRateLimitConfig_Normalize(t *testing.T) {
	r := RateLimitConfig{Capacity: 0, RefillTokens: 0, RefillInterval: 0, TTL: time.Second, Burst: -1}
	r.normalize()
	assert.Equal(t, 1, r.Capacity)
	assert.Equal(t, 1, r.RefillTokens)
	assert.Equal(t, time.Second, r.RefillInterval)
	assert.Equal(t, 5*time.Second, r.TTL)

	every := RateLimitConfig{Capacity: 10, RefillTokens: 4, RefillInterval: time.Second, TTL: time.Hour, RefillEvery: 3 * time.Second}
	every.normalize()
	assert.Equal(t, 1, every.RefillTokens)
	assert.Equal(t, 3*time.Second, every.RefillInterval)
}

func TestRedisConfig_Address(t *testing.T) {
	assert.Equal(t, "localhost:6379", RedisConfig{Addr: "localhost:6379"}.Address())
	assert.Equal(t, "cache:6380", RedisConfig{Addr: "localhost:6379", Host: "cache", Port: "6380"}.Address())
	assert.Equal(t, "localhost:6379", RedisConfig{Addr: "localhost:6379", Host: "cache"}.Address())
}
