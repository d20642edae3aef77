// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host         string        `env:"SITE_HOST"`
	Port         int           `env:"SITE_PORT,default=4000"`
	ReadTimeout  time.Duration `env:"SITE_READ_TIMEOUT,default=5s"`
	WriteTimeout time.Duration `env:"SITE_WRITE_TIMEOUT,default=10s"`
	IdleTimeout  time.Duration `env:"SITE_IDLE_TIMEOUT,default=1m"`
}

// DataConfig locates the flat-file collection directory and static assets.
type DataConfig struct {
	Dir       string `env:"SITE_DATA_DIR,default=data"`
	StaticDir string `env:"SITE_STATIC_DIR,default=public"`
}

// SessionConfig controls the cookie session manager.
type SessionConfig struct {
	TTL        time.Duration `env:"SITE_SESSION_TTL,default=8h"`
	CookieName string        `env:"SITE_SESSION_COOKIE,default=site_session"`
}

// AuthConfig holds the API token signing secret.
type AuthConfig struct {
	// The default secret is for local development only; production
	// deployments must set SITE_TOKEN_SECRET.
	TokenSecret string        `env:"SITE_TOKEN_SECRET,default=super-secret-key-change-me"`
	TokenTTL    time.Duration `env:"SITE_TOKEN_TTL,default=8h"`
}

// RateLimitConfig bounds the mutating routes per client.
type RateLimitConfig struct {
	Requests int           `env:"SITE_RATE_LIMIT,default=100"`
	Window   time.Duration `env:"SITE_RATE_WINDOW,default=15m"`
}

// LoggingConfig mirrors pkg/logger.Config.
type LoggingConfig struct {
	Level  string `env:"SITE_LOG_LEVEL,default=info"`
	Format string `env:"SITE_LOG_FORMAT,default=text"`
	Output string `env:"SITE_LOG_OUTPUT,default=stdout"`
}

// Config is the root configuration.
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Session   SessionConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	if cfg.Data.Dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if cfg.RateLimit.Requests <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %d", cfg.RateLimit.Requests)
	}

	return cfg, nil
}
