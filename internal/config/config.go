package config

import (
	"fmt"
	"net"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// HTTP
	HTTPPort       int           `env:"HTTP_PORT" default:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" default:"5s"`
	// Reverse proxies whose X-Forwarded-For is believed; empty trusts none
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// Database
	DatabaseURL       string        `env:"DATABASE_URL" required:"true"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" default:"30m"`

	// Session verification: an HMAC secret, an OIDC issuer, or both
	SessionJWTSecret string `env:"SESSION_JWT_SECRET"`
	SessionJWTIssuer string `env:"SESSION_JWT_ISSUER"`
	OIDCIssuerURL    string `env:"OIDC_ISSUER_URL"`
	OIDCClientID     string `env:"OIDC_CLIENT_ID"`

	// Identity lifecycle webhooks
	WebhookSecret    string        `env:"WEBHOOK_SECRET"`
	WebhookReplayTTL time.Duration `env:"WEBHOOK_REPLAY_TTL" default:"24h"`

	// Redis (webhook replay protection); an explicitly empty REDIS_URL disables it
	RedisURL      string `env:"REDIS_URL" default:"redis://redis:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Object storage for cover images
	MinIOEndpoint  string        `env:"MINIO_ENDPOINT" default:"localhost:9000"`
	MinIOAccessKey string        `env:"MINIO_ACCESS_KEY"`
	MinIOSecretKey string        `env:"MINIO_SECRET_KEY"`
	MinIOBucket    string        `env:"MINIO_BUCKET" default:"novelhub"`
	MinIOUseSSL    bool          `env:"MINIO_USE_SSL" default:"false"`
	UploadURLTTL   time.Duration `env:"UPLOAD_URL_TTL" default:"15m"`

	// Rate limiting of mutating requests, per client IP
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" default:"20"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" default:"debug"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

// LoadConfig loads configuration from environment variables, reading .env first when present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env file could not be read")
	}

	config := &Config{}
	loaders := []func() error{
		func() error { return loadEnvString(&config.GoEnv, "GO_ENV", "development") },

		func() error { return loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080) },
		func() error { return loadEnvDuration(&config.RequestTimeout, "REQUEST_TIMEOUT", 5*time.Second) },
		func() error { return loadEnvList(&config.TrustedProxies, "TRUSTED_PROXIES") },

		func() error { return loadEnvStringRequired(&config.DatabaseURL, "DATABASE_URL") },
		func() error { return loadEnvInt(&config.DBMaxOpenConns, "DB_MAX_OPEN_CONNS", 25) },
		func() error { return loadEnvInt(&config.DBMaxIdleConns, "DB_MAX_IDLE_CONNS", 5) },
		func() error { return loadEnvDuration(&config.DBConnMaxLifetime, "DB_CONN_MAX_LIFETIME", 30*time.Minute) },

		func() error { return loadEnvString(&config.SessionJWTSecret, "SESSION_JWT_SECRET", "") },
		func() error { return loadEnvString(&config.SessionJWTIssuer, "SESSION_JWT_ISSUER", "") },
		func() error { return loadEnvString(&config.OIDCIssuerURL, "OIDC_ISSUER_URL", "") },
		func() error { return loadEnvString(&config.OIDCClientID, "OIDC_CLIENT_ID", "") },

		func() error { return loadEnvString(&config.WebhookSecret, "WEBHOOK_SECRET", "") },
		func() error { return loadEnvDuration(&config.WebhookReplayTTL, "WEBHOOK_REPLAY_TTL", 24*time.Hour) },

		func() error { return loadEnvStringAllowEmpty(&config.RedisURL, "REDIS_URL", "redis://redis:6379") },
		func() error { return loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", "") },

		func() error { return loadEnvString(&config.MinIOEndpoint, "MINIO_ENDPOINT", "localhost:9000") },
		func() error { return loadEnvString(&config.MinIOAccessKey, "MINIO_ACCESS_KEY", "") },
		func() error { return loadEnvString(&config.MinIOSecretKey, "MINIO_SECRET_KEY", "") },
		func() error { return loadEnvString(&config.MinIOBucket, "MINIO_BUCKET", "novelhub") },
		func() error { return loadEnvBool(&config.MinIOUseSSL, "MINIO_USE_SSL", false) },
		func() error { return loadEnvDuration(&config.UploadURLTTL, "UPLOAD_URL_TTL", 15*time.Minute) },

		func() error { return loadEnvFloat(&config.RateLimitRPS, "RATE_LIMIT_RPS", 5) },
		func() error { return loadEnvInt(&config.RateLimitBurst, "RATE_LIMIT_BURST", 20) },

		func() error { return loadEnvString(&config.LogLevel, "LOG_LEVEL", "debug") },
		func() error { return loadEnvString(&config.LogFormat, "LOG_FORMAT", "text") },
	}
	for _, load := range loaders {
		if err := load(); err != nil {
			return nil, err
		}
	}
	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

// loadEnvStringAllowEmpty keeps an explicitly empty value instead of falling back.
func loadEnvStringAllowEmpty(target *string, key, defaultValue string) error {
	if value, ok := os.LookupEnv(key); ok {
		*target = strings.TrimSpace(value)
	} else {
		*target = defaultValue
	}
	return nil
}

// loadEnvList reads a comma separated list, dropping blank entries.
func loadEnvList(target *[]string, key string) error {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*target = out
	return nil
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate checks the loaded configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}
	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	switch {
	case c.SessionJWTSecret == "" && c.OIDCIssuerURL == "":
		errors = append(errors, "one of SESSION_JWT_SECRET or OIDC_ISSUER_URL must be set")
	case c.SessionJWTSecret != "" && len(c.SessionJWTSecret) < 32:
		errors = append(errors, "SESSION_JWT_SECRET should be at least 32 characters long")
	}
	if c.OIDCIssuerURL != "" && c.OIDCClientID == "" {
		errors = append(errors, "OIDC_CLIENT_ID is required with OIDC_ISSUER_URL")
	}

	for key, d := range map[string]time.Duration{
		"REQUEST_TIMEOUT":    c.RequestTimeout,
		"WEBHOOK_REPLAY_TTL": c.WebhookReplayTTL,
		"UPLOAD_URL_TTL":     c.UploadURLTTL,
	} {
		if d <= 0 {
			errors = append(errors, key+" must be positive")
		}
	}
	// presigned URLs cannot outlive seven days
	if c.UploadURLTTL > 7*24*time.Hour {
		errors = append(errors, "UPLOAD_URL_TTL must not exceed 168h")
	}
	if c.DBMaxOpenConns < 1 {
		errors = append(errors, "DB_MAX_OPEN_CONNS must be at least 1")
	}
	if c.DBMaxIdleConns < 0 || c.DBMaxIdleConns > c.DBMaxOpenConns {
		errors = append(errors, "DB_MAX_IDLE_CONNS must be between 0 and DB_MAX_OPEN_CONNS")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		errors = append(errors, "RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	for _, proxy := range c.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				errors = append(errors, fmt.Sprintf("TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy))
			}
		}
	}
	if c.MinIOBucket == "" {
		errors = append(errors, "MINIO_BUCKET must not be empty")
	}

	if len(errors) > 0 {
		slices.Sort(errors)
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}
	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// WebhooksEnabled reports whether lifecycle notifications can be verified.
func (c *Config) WebhooksEnabled() bool {
	return c.WebhookSecret != ""
}

// RedisEnabled reports whether webhook replay protection has a store.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != ""
}

// StorageEnabled reports whether cover uploads can be presigned.
func (c *Config) StorageEnabled() bool {
	return c.MinIOAccessKey != "" && c.MinIOSecretKey != ""
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
