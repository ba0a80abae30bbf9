package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"demand-forecast-app/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	pingAttempts = 3
	pingBackoff  = time.Second
)

// CacheService wraps redis. A CacheService without a client is valid and
// behaves as an always-empty cache.
type CacheService struct {
	client *redis.Client
}

// NewCacheService connects to cfg.URL. When redis cannot be reached the
// returned service is still usable (as a no-op) alongside the error.
func NewCacheService(cfg config.RedisConfig, log *zap.Logger) (*CacheService, error) {
	if !cfg.Enabled() {
		return &CacheService{}, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return &CacheService{}, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	var lastErr error
	for i := 0; i < pingAttempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			return &CacheService{client: client}, nil
		}
		log.Warn("redis ping failed",
			zap.Int("attempt", i+1),
			zap.Int("attempts", pingAttempts),
			zap.Error(lastErr))
		time.Sleep(pingBackoff)
	}

	_ = client.Close()
	return &CacheService{}, fmt.Errorf("redis ping failed after %d attempts: %w", pingAttempts, lastErr)
}

func (s *CacheService) Available() bool {
	return s != nil && s.client != nil
}

// Get decodes the value stored at key into dest and reports whether it was
// present.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Available() {
		return false, nil
	}
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Available() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Close() error {
	if !s.Available() {
		return nil
	}
	return s.client.Close()
}
