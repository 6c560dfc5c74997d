// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.Upstream.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Upstream.RequestTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.Redis.CartCacheTTL)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("UPSTREAM_BASE_URL", "https://api.example.com/v1")
	t.Setenv("UPSTREAM_REQUEST_TIMEOUT", "5s")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://api.example.com/v1", cfg.Upstream.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.RequestTimeout)
	assert.Equal(t, "redis.internal:6380", cfg.GetRedisAddr())
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server:   ServerConfig{Port: "8090"},
		Upstream: UpstreamConfig{BaseURL: "http://localhost:8080/api/v1"},
		Redis:    RedisConfig{Host: "localhost"},
		JWT:      JWTConfig{Secret: "a-secret-that-is-at-least-32-characters"},
	}
	require.NoError(t, valid.Validate())

	shortSecret := valid
	shortSecret.JWT.Secret = "short"
	assert.Error(t, shortSecret.Validate())

	noUpstream := valid
	noUpstream.Upstream.BaseURL = ""
	assert.Error(t, noUpstream.Validate())

	noRedis := valid
	noRedis.Redis.Host = ""
	assert.Error(t, noRedis.Validate())

	noPort := valid
	noPort.Server.Port = ""
	assert.Error(t, noPort.Validate())
}
