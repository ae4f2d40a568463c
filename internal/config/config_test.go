package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "tradehub", cfg.MongoDB)
	require.Equal(t, 168*time.Hour, cfg.JWTExpiry())
	require.Equal(t, time.Minute, cfg.RateLimitWindow)
	require.Empty(t, cfg.RedisAddr)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRE_HOURS", "2")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("MONGO_MAX_POOL", "20")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 2*time.Hour, cfg.JWTExpiry())
	require.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	require.EqualValues(t, 20, cfg.MongoMaxPool)
}

func TestLoadRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestNewRedisClientWithoutAddress(t *testing.T) {
	require.Nil(t, NewRedisClient(&Config{}))
}
