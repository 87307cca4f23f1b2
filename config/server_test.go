package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetServerConfigRedisEnabled(t *testing.T) {
	assert.True(t, GetServerConfig().RedisEnabled, "redis defaults to enabled")

	t.Setenv("REDIS_ENABLED", "false")
	assert.False(t, GetServerConfig().RedisEnabled)
}

func TestInitializeRedisDisabled(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "false")

	assert.NoError(t, InitializeRedis())
	assert.Nil(t, GetRedisClient(), "disabled redis leaves the client nil for fallback paths")
}
