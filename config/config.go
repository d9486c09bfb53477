package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	return nil
}

type Config struct {
	GoEnv    string `env:"GO_ENV" env-default:"development"`
	Port     int    `env:"PORT" env-default:"8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	DB     DB
	JWT    JWT
	Redis  Redis
	Cron   Cron
	Server Server
}

type DB struct {
	Driver     string `env:"DB_DRIVER" env-default:"postgres"` // postgres, sqlite
	Host       string `env:"DB_HOST" env-default:"localhost"`
	Port       string `env:"DB_PORT" env-default:"5432"`
	UserName   string `env:"DB_USER_NAME"`
	Password   string `env:"DB_PASSWORD"`
	Name       string `env:"DB_NAME"`
	SSLMode    string `env:"DB_SSL_MODE" env-default:"disable"`
	SQLitePath string `env:"SQLITE_PATH" env-default:"storefront.db"`
}

type JWT struct {
	Secret     string        `env:"JWT_SECRET" env-required:"true"`
	Issuer     string        `env:"JWT_ISSUER" env-default:"storefront-api"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL" env-default:"15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL" env-default:"168h"`
}

type Redis struct {
	URL string `env:"REDIS_URL"`
	// DenylistBackend selects where revoked token ids live: database or redis.
	DenylistBackend string `env:"DENYLIST_BACKEND" env-default:"database"`
}

type Cron struct {
	Enabled       bool   `env:"CRON_ENABLED" env-default:"true"`
	PruneSchedule string `env:"DENYLIST_PRUNE_SCHEDULE" env-default:"0 0 3 * * *"`
}

type Server struct {
	AllowedOrigins string        `env:"ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
	ReadTimeout    time.Duration `env:"READ_TIMEOUT" env-default:"10s"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout    time.Duration `env:"IDLE_TIMEOUT" env-default:"60s"`
}

func Get() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("config: JWT_SECRET must not be empty")
	}

	switch cfg.Redis.DenylistBackend {
	case "database":
	case "redis":
		if cfg.Redis.URL == "" {
			return nil, errors.New("config: DENYLIST_BACKEND=redis requires REDIS_URL")
		}
	default:
		return nil, fmt.Errorf("config: unknown DENYLIST_BACKEND %q", cfg.Redis.DenylistBackend)
	}

	return &cfg, nil
}

// IsProduction reports whether GO_ENV is production.
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}
