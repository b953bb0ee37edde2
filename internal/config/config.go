package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/greatochuko/fobeworkLMS/pkg/config"
)

const defaultJWTSecret = "change-this-to-a-secure-secret"

// Config holds all configuration for the server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"fobework"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"fobework_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"fobework"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Session tokens
	JWTSecret  string        `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Tracing
	TracingEnabled bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingURL     string  `env:"TRACING_OTLP_URL" envDefault:"localhost:4318"`
	TracingSample  float64 `env:"TRACING_SAMPLE_RATE" envDefault:"0.1"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}

	// In non-development environments, require an explicitly set, strong JWT secret.
	if cfg.Environment != "development" {
		if cfg.JWTSecret == defaultJWTSecret {
			return nil, fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", cfg.Environment)
		}
		if len(cfg.JWTSecret) < 32 {
			return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long, got %d", len(cfg.JWTSecret))
		}
	}

	return cfg, nil
}

// PostgresDSN returns the PostgreSQL connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresSSL,
	)
}

// SecureCookies reports whether session cookies should carry the Secure
// attribute. Development runs over plain HTTP.
func (c *Config) SecureCookies() bool {
	return c.Environment != "development"
}
