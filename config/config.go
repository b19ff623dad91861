package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Search    SearchConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog store configuration
type CatalogConfig struct {
	DBPath   string `mapstructure:"db_path"`
	SeedFile string `mapstructure:"seed_file"` // optional, imported when the store is empty
}

// SearchConfig holds search and suggestion tuning
type SearchConfig struct {
	DefaultLimit int           `mapstructure:"default_limit"`
	MaxLimit     int           `mapstructure:"max_limit"`
	SuggestLimit int           `mapstructure:"suggest_limit"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP float64 `mapstructure:"per_ip"` // requests per second per client
	Burst int     `mapstructure:"burst"`
}

// LogConfig holds diagnostics configuration
type LogConfig struct {
	Level      string `mapstructure:"level"`
	BufferSize int    `mapstructure:"buffer_size"` // retained entries for the admin log view
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/storelens/")

	// Environment variable settings
	v.SetEnvPrefix("STORELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.db_path", "storelens.db")
	v.SetDefault("catalog.seed_file", "")

	// Search defaults
	v.SetDefault("search.default_limit", 10)
	v.SetDefault("search.max_limit", 50)
	v.SetDefault("search.suggest_limit", 8)
	v.SetDefault("search.cache_ttl", "30s")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 10.0)
	v.SetDefault("ratelimit.burst", 20)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.buffer_size", 256)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.DBPath == "" {
		return fmt.Errorf("catalog db path is required (set STORELENS_CATALOG_DB_PATH)")
	}

	if config.Search.DefaultLimit < 1 {
		return fmt.Errorf("search default limit must be at least 1, got: %d", config.Search.DefaultLimit)
	}

	if config.Search.MaxLimit < config.Search.DefaultLimit {
		return fmt.Errorf("search max limit (%d) must be >= default limit (%d)",
			config.Search.MaxLimit, config.Search.DefaultLimit)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("rate limit per_ip must be positive, got: %v", config.RateLimit.PerIP)
	}

	switch config.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error, got: %s", config.Log.Level)
	}

	return nil
}
