package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable the application reads
const EnvPrefix = "PACKFORM"

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Labeler   LabelerConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
	Metrics   MetricsConfig
	Upload    UploadConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LabelerConfig holds labeling engine configuration
type LabelerConfig struct {
	LabelField   string `mapstructure:"label_field"`
	TextField    string `mapstructure:"text_field"`
	ExampleLimit int    `mapstructure:"example_limit"`
	TaxonomyFile string `mapstructure:"taxonomy_file"`
	Debug        bool   `mapstructure:"debug"`
}

// CacheConfig holds detection cache configuration
type CacheConfig struct {
	Type       string        `mapstructure:"type"` // "memory" or "none"
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
	Burst int `mapstructure:"burst"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// MetricsConfig holds Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// UploadConfig holds workbook upload configuration
type UploadConfig struct {
	MaxBytes int64  `mapstructure:"max_bytes"`
	Sheet    string `mapstructure:"sheet"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration from path, or from the default search paths
// when path is empty. A .env file in the working directory is applied first.
func LoadFile(path string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/packform/")
	}

	// Environment variable settings: PACKFORM_SERVER_PORT -> server.port
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional unless a path was given)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile applies ./.env without overriding variables that are already set
func loadEnvFile() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Labeler defaults
	v.SetDefault("labeler.label_field", "Pack form")
	v.SetDefault("labeler.text_field", "Product")
	v.SetDefault("labeler.example_limit", 10)
	v.SetDefault("labeler.taxonomy_file", "")
	v.SetDefault("labeler.debug", false)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.max_entries", 100000)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.burst", 20)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Upload defaults
	v.SetDefault("upload.max_bytes", 20<<20) // 20 MiB
	v.SetDefault("upload.sheet", "")
}

// validate validates the configuration
func validate(config *Config) error {
	port, err := strconv.Atoi(config.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("server port must be a number between 1 and 65535, got: %q", config.Server.Port)
	}

	if strings.TrimSpace(config.Labeler.LabelField) == "" || strings.TrimSpace(config.Labeler.TextField) == "" {
		return fmt.Errorf("label_field and text_field are required")
	}
	if config.Labeler.LabelField == config.Labeler.TextField {
		return fmt.Errorf("label_field and text_field must differ, both are %q", config.Labeler.LabelField)
	}
	if config.Labeler.ExampleLimit < 0 {
		return fmt.Errorf("example_limit must not be negative, got: %d", config.Labeler.ExampleLimit)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "none" {
		return fmt.Errorf("cache type must be 'memory' or 'none', got: %s", config.Cache.Type)
	}
	if config.Cache.Type == "memory" && config.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got: %v", config.Cache.TTL)
	}

	if config.RateLimit.PerIP < 0 || config.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}

	switch strings.ToLower(config.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging level must be debug, info, warn or error, got: %s", config.Logging.Level)
	}

	if config.Metrics.Enabled && !strings.HasPrefix(config.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with '/', got: %q", config.Metrics.Path)
	}

	if config.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload max_bytes must be positive, got: %d", config.Upload.MaxBytes)
	}

	return nil
}
