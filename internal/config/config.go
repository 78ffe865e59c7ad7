package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	pkgconfig "github.com/utafrali/estatehub/pkg/config"
	"github.com/utafrali/estatehub/pkg/database"
	"github.com/utafrali/estatehub/pkg/tracing"
)

const (
	ServiceName = "estatehub"

	defaultJWTSecret = "change-this-to-a-secure-secret"
)

// Config holds all configuration for the listing service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Version     string `env:"SERVICE_VERSION" envDefault:"dev"`

	// HTTP server
	HTTPPort           int      `env:"HTTP_PORT" envDefault:"8080"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	RateLimitRPS       float64  `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst     int      `env:"RATE_LIMIT_BURST" envDefault:"40"`
	PublicCacheMaxAge  int      `env:"PUBLIC_CACHE_MAX_AGE_SECONDS" envDefault:"60"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"estatehub"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"estatehub_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"estatehub"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Database pool
	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`
	SlowQueryThresholdMs  int   `env:"LOG_SLOW_QUERY_MS" envDefault:"500"`

	// Redis featured-listing cache. An empty host disables caching.
	RedisHost        string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort        int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass        string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	FeaturedCacheTTL time.Duration `env:"FEATURED_CACHE_TTL" envDefault:"5m"`
	FeaturedRefresh  string        `env:"FEATURED_REFRESH_SCHEDULE" envDefault:"@every 4m"`

	// Kafka domain events. No brokers disables publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	// Identity tokens
	JWTSecret   string `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	JWTIssuer   string `env:"JWT_ISSUER" envDefault:""`
	JWTAudience string `env:"JWT_AUDIENCE" envDefault:""`

	// External property-data lookup. An empty base URL disables it.
	LookupBaseURL string        `env:"LOOKUP_BASE_URL" envDefault:""`
	LookupAPIKey  string        `env:"LOOKUP_API_KEY" envDefault:""`
	LookupAPIHost string        `env:"LOOKUP_API_HOST" envDefault:""`
	LookupTimeout time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"10s"`

	// Assistant. Without an API key the keyword responder is used.
	OpenAIAPIKey  string `env:"OPENAI_API_KEY" envDefault:""`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:""`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128" envSeparator:","`
}

// Load reads configuration from the environment (and an optional .env file).
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load estatehub config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.PostgresUser == "" {
		return fmt.Errorf("POSTGRES_USER is required")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.FeaturedCacheTTL <= 0 {
		return fmt.Errorf("FEATURED_CACHE_TTL must be positive, got %s", c.FeaturedCacheTTL)
	}
	if _, err := cron.ParseStandard(c.FeaturedRefresh); err != nil {
		return fmt.Errorf("invalid FEATURED_REFRESH_SCHEDULE %q: %w", c.FeaturedRefresh, err)
	}
	if c.Environment != "development" {
		if c.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", c.Environment)
		}
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters long, got %d", len(c.JWTSecret))
		}
	}
	return nil
}

// Postgres returns the pool configuration.
func (c *Config) Postgres() *database.PostgresConfig {
	return &database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: time.Duration(c.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(c.DBMaxConnIdleTimeMins) * time.Minute,
	}
}

// Redis returns the cache connection settings.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{Host: c.RedisHost, Port: c.RedisPort, Password: c.RedisPass, DB: c.RedisDB}
}

// Tracing returns the OpenTelemetry settings.
func (c *Config) Tracing() tracing.Config {
	return tracing.Config{
		ServiceName:    ServiceName,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		OTLPEndpoint:   c.OTELEndpoint,
		SampleRate:     c.OTELSampleRate,
		Enabled:        c.OTELEnabled,
	}
}

// SlowQueryThreshold is the duration above which queries are logged.
func (c *Config) SlowQueryThreshold() time.Duration {
	return time.Duration(c.SlowQueryThresholdMs) * time.Millisecond
}

// CacheEnabled reports whether a Redis host is configured.
func (c *Config) CacheEnabled() bool { return c.RedisHost != "" }

// EventsEnabled reports whether Kafka brokers are configured.
func (c *Config) EventsEnabled() bool { return len(c.KafkaBrokers) > 0 }

// LookupEnabled reports whether the property-data API is configured.
func (c *Config) LookupEnabled() bool { return c.LookupBaseURL != "" }
