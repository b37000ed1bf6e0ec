package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"todofront/internal/core/domain"
)

const (
	ViewStoreMemory = "memory"
	ViewStoreRedis  = "redis"
)

type AppConfig struct {
	Environment    string `env:"APP_ENV" env-default:"development"`
	ServiceName    string `env:"SERVICE_NAME" env-default:"todofront"`
	ServiceVersion string `env:"SERVICE_VERSION" env-default:"1.0.0"`

	Port        string `env:"PORT" env-default:"8080"`
	MetricsPort string `env:"METRICS_PORT" env-default:"9091"`

	BackendURL     string        `env:"BACKEND_URL"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" env-default:"15s"`

	LokiURL      string `env:"LOKI_URL"`
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`

	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" env-default:"true"`
	RateLimitConfigs map[string]RateLimitConfig `env:"-"`

	EnforceHTTPS bool `env:"ENFORCE_HTTPS" env-default:"false"`

	ViewStore string        `env:"VIEW_STORE" env-default:"memory"`
	RedisURL  string        `env:"REDIS_URL"`
	ViewTTL   time.Duration `env:"VIEW_TTL" env-default:"30m"`
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) (*AppConfig, error) {
	if err := godotenv.Load(files...); err != nil && len(files) > 0 {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	config := GetDefaultConfig()

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if gin.Mode() == gin.ReleaseMode {
		config.Environment = "production"
	}

	if config.IsProduction() {
		config.EnforceHTTPS = true
	}

	return config, nil
}

func (c *AppConfig) Validate() error {
	if c.BackendURL == "" {
		return &domain.ConfigurationError{Key: "BACKEND_URL"}
	}

	if c.BackendTimeout <= 0 {
		return &domain.ConfigurationError{Key: "BACKEND_TIMEOUT", Err: errors.New("must be positive")}
	}

	switch c.ViewStore {
	case ViewStoreMemory:
	case ViewStoreRedis:
		if c.RedisURL == "" {
			return &domain.ConfigurationError{Key: "REDIS_URL"}
		}
	default:
		return &domain.ConfigurationError{Key: "VIEW_STORE", Err: fmt.Errorf("unknown store %q", c.ViewStore)}
	}

	return nil
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Environment:      "development",
		ServiceName:      "todofront",
		ServiceVersion:   "1.0.0",
		Port:             "8080",
		MetricsPort:      "9091",
		BackendTimeout:   15 * time.Second,
		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"POST /todos": {
				Requests: 20,
				Window:   time.Minute,
			},
			"POST /api/todos": {
				Requests: 20,
				Window:   time.Minute,
			},
			"POST /todos/:id/delete": {
				Requests: 10,
				Window:   time.Minute,
			},
			"DELETE /api/todos/:id": {
				Requests: 10,
				Window:   time.Minute,
			},
		},
		EnforceHTTPS: false,
		ViewStore:    ViewStoreMemory,
		ViewTTL:      30 * time.Minute,
	}
}
