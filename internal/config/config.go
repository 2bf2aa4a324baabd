package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds every setting the service reads at startup.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	RabbitMQ RabbitMQConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Port        string
	Env         string
	ServiceName string
	LogLevel    string
	LogFormat   string
}

type DatabaseConfig struct {
	Driver      string
	DSN         string
	AutoMigrate bool
}

type JWTConfig struct {
	Secret string
}

// RabbitMQConfig is optional; an empty URL disables order events.
type RabbitMQConfig struct {
	URL string
}

// RedisConfig is optional; an empty URL disables login rate limiting.
type RedisConfig struct {
	URL             string
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	return FromViper(v)
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVICE_NAME", "storefront")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=storefront port=5432 sslmode=disable")
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("LOGIN_RATE_LIMIT", 10)
	v.SetDefault("LOGIN_RATE_WINDOW", time.Minute)
}

// FromViper builds and validates a Config from an already-populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Port:        v.GetString("APP_PORT"),
			Env:         v.GetString("APP_ENV"),
			ServiceName: v.GetString("SERVICE_NAME"),
			LogLevel:    v.GetString("LOG_LEVEL"),
			LogFormat:   v.GetString("LOG_FORMAT"),
		},
		Database: DatabaseConfig{
			Driver:      strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_DRIVER"))),
			DSN:         v.GetString("DATABASE_DSN"),
			AutoMigrate: v.GetBool("DATABASE_AUTO_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: strings.TrimSpace(v.GetString("RABBITMQ_URL")),
		},
		Redis: RedisConfig{
			URL:             strings.TrimSpace(v.GetString("REDIS_URL")),
			LoginRateLimit:  v.GetInt("LOGIN_RATE_LIMIT"),
			LoginRateWindow: v.GetDuration("LOGIN_RATE_WINDOW"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	if c.Redis.URL != "" && (c.Redis.LoginRateLimit <= 0 || c.Redis.LoginRateWindow <= 0) {
		return fmt.Errorf("LOGIN_RATE_LIMIT and LOGIN_RATE_WINDOW must be positive when REDIS_URL is set")
	}
	return nil
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, "production") || strings.EqualFold(a.Env, "prod")
}
