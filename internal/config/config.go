package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"estimator/internal/cleaner"
)

// DefaultPath is read when CONFIG_PATH is unset.
const DefaultPath = "config.yaml"

// Config holds all configuration for the application.
// Values come from an optional YAML file; environment variables override them.
// Secrets are read from the environment only.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Model    ModelConfig    `yaml:"model"`
	Cleaning CleaningConfig `yaml:"cleaning"`
	History  HistoryConfig  `yaml:"history"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int      `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	Host           string   `yaml:"host" env:"SERVER_HOST" env-default:"0.0.0.0"`
	GinMode        string   `yaml:"gin_mode" env:"GIN_MODE" env-default:"release"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods []string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders []string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Content-Type,Authorization"`
}

// DatabaseConfig holds the dataset and history database configuration
type DatabaseConfig struct {
	Driver             string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	DSN                string `yaml:"dsn" env:"DATABASE_URL"` // takes precedence over the fields below
	Host               string `yaml:"host" env:"PG_HOST" env-default:"localhost"`
	Port               int    `yaml:"port" env:"PG_PORT" env-default:"5432"`
	User               string `yaml:"user" env:"PG_USER" env-default:"postgres"`
	Password           string `yaml:"-" env:"PG_PASSWORD"`
	Database           string `yaml:"database" env:"PG_DATABASE" env-default:"real_estate"`
	SSLMode            string `yaml:"ssl_mode" env:"PG_SSLMODE" env-default:"disable"`
	MaxConnections     int    `yaml:"max_connections" env:"PG_MAX_CONNECTIONS" env-default:"25"`
	MaxIdleConnections int    `yaml:"max_idle_connections" env:"PG_MAX_IDLE_CONNECTIONS" env-default:"5"`
	AutoMigrate        bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
}

// RedisConfig holds the range cache configuration. An empty Addr keeps the
// cache in process.
type RedisConfig struct {
	Addr      string        `yaml:"addr" env:"REDIS_ADDR"`
	Password  string        `yaml:"-" env:"REDIS_PASSWORD"`
	DB        int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	RangesTTL time.Duration `yaml:"ranges_ttl" env:"RANGES_TTL" env-default:"10m"`
}

// ModelConfig locates the trained artifact bundle
type ModelConfig struct {
	BundlePath string `yaml:"bundle_path" env:"MODEL_BUNDLE_PATH" env-default:"model/bundle.yaml"`
}

// CleaningConfig holds the sanitizer thresholds
type CleaningConfig struct {
	MinPrice                  float64 `yaml:"min_price" env:"CLEAN_MIN_PRICE" env-default:"10000"`
	MinArea                   float64 `yaml:"min_area" env:"CLEAN_MIN_AREA" env-default:"10"`
	MaxArea                   float64 `yaml:"max_area" env:"CLEAN_MAX_AREA" env-default:"300"`
	MinRooms                  int     `yaml:"min_rooms" env:"CLEAN_MIN_ROOMS" env-default:"1"`
	MaxRooms                  int     `yaml:"max_rooms" env:"CLEAN_MAX_ROOMS" env-default:"10"`
	PriceUpperQuantile        float64 `yaml:"price_upper_quantile" env:"CLEAN_PRICE_UPPER_QUANTILE" env-default:"0.995"`
	PricePerAreaLowerQuantile float64 `yaml:"price_per_area_lower_quantile" env:"CLEAN_PPA_LOWER_QUANTILE" env-default:"0.025"`
	PricePerAreaUpperQuantile float64 `yaml:"price_per_area_upper_quantile" env:"CLEAN_PPA_UPPER_QUANTILE" env-default:"0.995"`
}

// HistoryConfig holds prediction history listing limits
type HistoryConfig struct {
	DefaultLimit int `yaml:"default_limit" env:"HISTORY_DEFAULT_LIMIT" env-default:"50"`
	MaxLimit     int `yaml:"max_limit" env:"HISTORY_MAX_LIMIT" env-default:"500"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Load reads configuration from path (or CONFIG_PATH, or config.yaml) with
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := &Config{}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database driver must be postgres or sqlite, got %q", c.Database.Driver)
	}

	cl := c.Cleaning
	for name, q := range map[string]float64{
		"price_upper_quantile":          cl.PriceUpperQuantile,
		"price_per_area_lower_quantile": cl.PricePerAreaLowerQuantile,
		"price_per_area_upper_quantile": cl.PricePerAreaUpperQuantile,
	} {
		if q < 0 || q > 1 {
			return fmt.Errorf("%s must be within [0,1], got %v", name, q)
		}
	}
	if cl.PricePerAreaLowerQuantile >= cl.PricePerAreaUpperQuantile {
		return fmt.Errorf("price_per_area_lower_quantile must be below price_per_area_upper_quantile")
	}
	if cl.MinArea > cl.MaxArea || cl.MinRooms > cl.MaxRooms {
		return fmt.Errorf("cleaning minimums must not exceed maximums")
	}
	if c.History.DefaultLimit <= 0 || c.History.MaxLimit < c.History.DefaultLimit {
		return fmt.Errorf("history limits must satisfy 0 < default_limit <= max_limit")
	}
	return nil
}

// DatabaseDSN returns the connection string for the configured driver
func (c *Config) DatabaseDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	if c.Database.Driver == "sqlite" {
		return c.Database.Database
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// SanitizerOptions converts the cleaning section into sanitizer options
func (c CleaningConfig) SanitizerOptions() cleaner.Options {
	return cleaner.Options{
		MinPrice:                  c.MinPrice,
		MinArea:                   c.MinArea,
		MaxArea:                   c.MaxArea,
		MinRooms:                  c.MinRooms,
		MaxRooms:                  c.MaxRooms,
		PriceUpperQuantile:        c.PriceUpperQuantile,
		PricePerAreaLowerQuantile: c.PricePerAreaLowerQuantile,
		PricePerAreaUpperQuantile: c.PricePerAreaUpperQuantile,
	}
}
