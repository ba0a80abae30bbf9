package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Model  ModelConfig
	Log    LogConfig
	Redis  RedisConfig
	CORS   CORSConfig
}

type ServerConfig struct {
	Port int
}

// ModelConfig points at the artifact read once at startup.
type ModelConfig struct {
	Path string
}

type LogConfig struct {
	Level  string
	Format string
}

// RedisConfig enables the prediction cache when URL is set.
type RedisConfig struct {
	URL string
	TTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins string
}

func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

// LoadConfig reads .env (if present) and then the process environment.
// Variables already set in the environment are not overridden by .env.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	serverPort, err := getIntEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	cacheTTL, err := getIntEnv("CACHE_TTL_SEC", 300)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_SEC: %w", err)
	}
	if cacheTTL < 0 {
		return nil, fmt.Errorf("invalid CACHE_TTL_SEC: must not be negative, got %d", cacheTTL)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		Model: ModelConfig{
			Path: getEnv("MODEL_PATH", "artifacts/demand_model_1.json"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
			TTL: time.Duration(cacheTTL) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}
