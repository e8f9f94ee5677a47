package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "MODSTUDIO"

// Config is the full runtime configuration of the service, populated from
// MODSTUDIO_-prefixed environment variables.
type Config struct {
	App           AppConfig           `split_words:"true"`
	DB            DBConfig            `split_words:"true"`
	Redis         RedisConfig         `split_words:"true"`
	JWT           JWTConfig           `split_words:"true"`
	AuthRateLimit AuthRateLimitConfig `split_words:"true"`
	Features      FeatureFlags        `split_words:"true"`
}

// AppConfig carries process-level settings.
type AppConfig struct {
	Env             string        `split_words:"true" default:"local"`
	Port            int           `split_words:"true" default:"8080"`
	ShutdownTimeout time.Duration `split_words:"true" default:"15s"`
	LogLevel        string        `split_words:"true" default:"info"`
}

// DBConfig carries the postgres connection settings.
type DBConfig struct {
	Host            string        `split_words:"true" default:"localhost"`
	Port            int           `split_words:"true" default:"5432"`
	User            string        `split_words:"true" default:"modstudio"`
	Password        string        `split_words:"true" default:""`
	Name            string        `split_words:"true" default:"modstudio"`
	SSLMode         string        `split_words:"true" default:"disable"`
	MaxOpenConns    int           `split_words:"true" default:"20"`
	MaxIdleConns    int           `split_words:"true" default:"5"`
	ConnMaxLifetime time.Duration `split_words:"true" default:"30m"`
}

// DSN renders the postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisConfig carries the redis connection settings used for checkout
// idempotency and login rate limiting.
type RedisConfig struct {
	Addr     string `split_words:"true" default:"localhost:6379"`
	Password string `split_words:"true" default:""`
	DB       int    `split_words:"true" default:"0"`
}

// JWTConfig carries the access-token signing settings.
type JWTConfig struct {
	Secret    string        `split_words:"true" default:""`
	Issuer    string        `split_words:"true" default:"modstudio"`
	AccessTTL time.Duration `split_words:"true" default:"24h"`
}

// AuthRateLimitConfig bounds login attempts per customer identifier.
type AuthRateLimitConfig struct {
	MaxAttempts int           `split_words:"true" default:"10"`
	Window      time.Duration `split_words:"true" default:"15m"`
}

// FeatureFlags toggles optional behaviour.
type FeatureFlags struct {
	AutoMigrate bool `split_words:"true" default:"true"`
	SeedCatalog bool `split_words:"true" default:"true"`
}

// Load reads .env when present, then populates Config from the environment.
func Load() (*Config, error) {
	// Best effort: local development keeps settings in .env, deployed
	// environments inject real environment variables.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations that cannot run safely.
func (c *Config) Validate() error {
	if !isKnownEnv(c.App.Env) {
		return fmt.Errorf("unknown app env %q", c.App.Env)
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid app port %d", c.App.Port)
	}
	if c.JWT.Secret == "" && c.App.Env != EnvLocal && c.App.Env != EnvTest {
		return fmt.Errorf("jwt secret is required in %s", c.App.Env)
	}
	if c.AuthRateLimit.MaxAttempts <= 0 {
		return fmt.Errorf("auth rate limit max attempts must be positive, got %d", c.AuthRateLimit.MaxAttempts)
	}
	return nil
}

// IsDev reports whether the app runs in a development environment.
func (c AppConfig) IsDev() bool {
	return c.Env == EnvLocal || c.Env == EnvTest
}

// IsProduction reports whether the process runs with production settings.
func (c *Config) IsProduction() bool {
	return c.App.Env == EnvProduction
}
