package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// DevSessionSecret signs session cookies when SESSION_SECRET is unset.
// The server logs a warning whenever it is in use.
const DevSessionSecret = "health-whisperer-dev-secret"

type Config struct {
	Port          string  `env:"PORT,           default=5000"`
	Env           string  `env:"ENV,            default=development"`
	LogLevel      string  `env:"LOG_LEVEL,      default=info"`
	DatabaseURL   string  `env:"DATABASE_URL,   required"`
	SessionSecret string  `env:"SESSION_SECRET"`
	JWTSecret     string  `env:"JWT_SECRET"`
	RateLimit     float64 `env:"API_RATE_LIMIT, default=10"`

	Database DatabaseConfig
	AI       AIConfig
	Redis    RedisConfig
	Mongo    MongoConfig
}

type DatabaseConfig struct {
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,    default=10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,    default=5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME, default=300s"`
}

type AIConfig struct {
	APIKey  string        `env:"GEMINI_API_KEY"`
	Model   string        `env:"GEMINI_MODEL,    default=gemini-2.5-flash"`
	BaseURL string        `env:"GEMINI_BASE_URL, default=https://generativelanguage.googleapis.com/v1beta"`
	Timeout time.Duration `env:"AI_TIMEOUT,      default=10s"`
}

// RedisConfig leaves both URL and Addr empty by default; login throttling is
// off without one of them. REDIS_URL wins when both are set.
type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`

	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	LoginWindow      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

type MongoConfig struct {
	Database string `env:"MONGO_DB, default=health_whisperer"`
}

// IsProduction reports whether the service runs with production settings
// (secure cookies, JSON logs).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UsingDevSecret reports whether sessions are signed with DevSessionSecret.
func (c *Config) UsingDevSecret() bool {
	return c.SessionSecret == DevSessionSecret
}

// Load reads a .env file when present, then configuration from environment
// variables using go-envconfig.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("config: failed to read .env: %v", err))
	}
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith resolves configuration from an arbitrary lookuper and applies
// secret fallbacks.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = DevSessionSecret
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = cfg.SessionSecret
	}
	return &cfg, nil
}
