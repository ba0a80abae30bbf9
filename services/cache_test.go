package services

import (
	"context"
	"testing"
	"time"

	"demand-forecast-app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCacheServiceDisabled(t *testing.T) {
	cache, err := NewCacheService(config.RedisConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, cache.Available())

	ctx := context.Background()
	var dest float64
	found, err := cache.Get(ctx, "k", &dest)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, cache.Set(ctx, "k", 1.0, time.Minute))
	assert.NoError(t, cache.Close())
}

func TestCacheServiceInvalidURL(t *testing.T) {
	cache, err := NewCacheService(config.RedisConfig{URL: "not-a-redis-url"}, zap.NewNop())
	assert.Error(t, err)
	require.NotNil(t, cache)
	assert.False(t, cache.Available())
}

func TestNilCacheServiceIsSafe(t *testing.T) {
	var cache *CacheService
	assert.False(t, cache.Available())

	var dest float64
	found, err := cache.Get(context.Background(), "k", &dest)
	assert.NoError(t, err)
	assert.False(t, found)
}
