package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for a service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Activity ActivityConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `env:"APP_NAME" envDefault:"echonet"`
	Env                   string `env:"APP_ENV" envDefault:"development"`
	Host                  string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port                  string `env:"APP_PORT" envDefault:"8080"`
	Version               string `env:"APP_VERSION" envDefault:"dev"`
	RequestTimeoutSeconds int    `env:"HTTP_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string `env:"POSTGRES_DSN"`
	MaxConns       int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	MinConns       int32  `env:"POSTGRES_MIN_CONNS" envDefault:"2"`
	RunMigrations  bool   `env:"POSTGRES_RUN_MIGRATIONS" envDefault:"true"`
	ConnMaxIdleSec int32  `env:"POSTGRES_CONN_MAX_IDLE_SECONDS" envDefault:"30"`
	ConnMaxLifeSec int32  `env:"POSTGRES_CONN_MAX_LIFE_SECONDS" envDefault:"300"`
	HealthCheckSec int32  `env:"POSTGRES_HEALTH_CHECK_SECONDS" envDefault:"60"`
	ConnTimeoutSec int32  `env:"POSTGRES_CONNECT_TIMEOUT_SECONDS" envDefault:"5"`
	// ApplicationName is reported to the server; empty means the service name.
	ApplicationName string `env:"POSTGRES_APPLICATION_NAME"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr           string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	Password       string `env:"REDIS_PASSWORD"`
	DB             int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize       int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	DialTimeoutSec int    `env:"REDIS_DIAL_TIMEOUT_SECONDS" envDefault:"5"`
	// ClientName is sent with CLIENT SETNAME; empty means the service name.
	ClientName string `env:"REDIS_CLIENT_NAME"`
	// FriendPrefix namespaces the per-user friend sets.
	FriendPrefix string `env:"REDIS_FRIEND_PREFIX" envDefault:"friends"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// AuthConfig defines token and password parameters shared by every service.
// JWTSecret must be byte-identical across all deployments.
type AuthConfig struct {
	JWTSecret             string `env:"AUTH_JWT_SECRET" envDefault:"echonet-development-secret-change-me"`
	AccessTokenTTLMinutes int    `env:"AUTH_ACCESS_TOKEN_TTL_MINUTES" envDefault:"60"`
	BcryptCost            int    `env:"AUTH_BCRYPT_COST" envDefault:"12"`
	IdentityPolicy        string `env:"AUTH_IDENTITY_POLICY"`
}

// ActivityConfig holds stub activity notification endpoints.
type ActivityConfig struct {
	WebhookURL string `env:"ACTIVITY_WEBHOOK_URL"`
}

// Load reads configuration from the environment after applying any .env files.
// Missing files are ignored; the process environment always wins.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else {
		for _, f := range envFiles {
			_ = godotenv.Load(f)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}
	if c.Auth.AccessTokenTTLMinutes <= 0 {
		return fmt.Errorf("invalid AUTH_ACCESS_TOKEN_TTL_MINUTES: %d", c.Auth.AccessTokenTTLMinutes)
	}
	if c.Postgres.MinConns > c.Postgres.MaxConns && c.Postgres.MaxConns > 0 {
		return fmt.Errorf("POSTGRES_MIN_CONNS (%d) exceeds POSTGRES_MAX_CONNS (%d)", c.Postgres.MinConns, c.Postgres.MaxConns)
	}
	if c.Redis.PoolSize < 0 {
		return fmt.Errorf("invalid REDIS_POOL_SIZE: %d", c.Redis.PoolSize)
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("invalid AUTH_BCRYPT_COST: %d", c.Auth.BcryptCost)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the access token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}
