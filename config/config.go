// Package config builds the immutable runtime configuration of the notes API.
// It is loaded once in main and handed to every constructor; request
// handlers never read the environment directly.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	// DevSecret signs tokens when JWT_SECRET is unset in development or test.
	DevSecret = "dev-only-secret-change-me"

	minProductionSecretLen = 32
)

var (
	ErrMissingSecret  = errors.New("JWT_SECRET must be set outside development and test")
	ErrDefaultSecret  = errors.New("JWT_SECRET must not use the development default outside development and test")
	ErrWeakSecret     = fmt.Errorf("JWT_SECRET must be at least %d bytes outside development and test", minProductionSecretLen)
	ErrUnknownDriver  = errors.New("unknown STORE_DRIVER")
	ErrInvalidTimeout = errors.New("DB_TIMEOUT must be positive")
	ErrInvalidProxy   = errors.New("TRUSTED_PROXIES entries must be IPs or CIDRs")
)

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           time.Duration
}

type RateLimitConfig struct {
	RedisURL string
	Limit    int64
	Window   time.Duration
}

type Config struct {
	Environment     string
	Port            string
	JWTSecret       string
	UsingDevSecret  bool
	LogLevel        string
	LogFormat       string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
	// TrustedProxies may set X-Forwarded-For. Empty means the client IP is
	// always the connection's remote address.
	TrustedProxies  []string

	Database  DatabaseConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return LoadFrom(os.LookupEnv)
}

// LoadFrom builds a Config from lookup and validates it.
func LoadFrom(lookup LookupFunc) (*Config, error) {
	e := env{lookup: lookup}

	cfg := &Config{
		Environment:     e.String("APP_ENV", EnvDevelopment),
		Port:            e.String("PORT", "8080"),
		JWTSecret:       e.String("JWT_SECRET", ""),
		LogLevel:        e.String("LOG_LEVEL", "info"),
		LogFormat:       e.String("LOG_FORMAT", ""),
		MaxBodyBytes:    e.Int64("MAX_BODY_BYTES", 1<<20),
		ShutdownTimeout: e.Duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		TrustedProxies:  e.List("TRUSTED_PROXIES", nil),
		Database:        loadDatabaseConfig(e),
		CORS: CORSConfig{
			AllowedOrigins:   e.List("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			AllowedMethods:   e.List("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   e.List("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
			AllowCredentials: e.Bool("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           e.Duration("CORS_MAX_AGE", 24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			RedisURL: e.String("REDIS_URL", ""),
			Limit:    e.Int64("LOGIN_RATE_LIMIT", 10),
			Window:   e.Duration("LOGIN_RATE_WINDOW", 15*time.Minute),
		},
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
		if cfg.IsProduction() {
			cfg.LogFormat = "json"
		}
	}

	if cfg.JWTSecret == "" && cfg.AllowsDevSecret() {
		cfg.JWTSecret = DevSecret
		cfg.UsingDevSecret = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// AllowsDevSecret is true only for the named local environments, so a
// misspelled APP_ENV gets the strict secret rules.
func (c *Config) AllowsDevSecret() bool {
	return c.Environment == EnvDevelopment || c.Environment == EnvTest
}

// Validate rejects configurations that must never reach a deployment.
func (c *Config) Validate() error {
	if !c.AllowsDevSecret() {
		switch {
		case c.JWTSecret == "":
			return ErrMissingSecret
		case c.JWTSecret == DevSecret:
			return ErrDefaultSecret
		case len(c.JWTSecret) < minProductionSecretLen:
			return ErrWeakSecret
		}
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Database.Driver)
	}

	if c.Database.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	for _, proxy := range c.TrustedProxies {
		if _, err := netip.ParsePrefix(proxy); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(proxy); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidProxy, proxy)
		}
	}
	return nil
}
