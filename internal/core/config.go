package core

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the main configuration for the sitemap service
type Config struct {
	Server   ServerConfig   `json:"server"`
	Site     SiteConfig     `json:"site"`
	Database DatabaseConfig `json:"database"`
	Catalog  CatalogConfig  `json:"catalog"`
	Features FeatureConfig  `json:"features"`
	LogLevel string         `json:"log_level"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port int    `json:"port"`
	Host string `json:"host"`
}

// SiteConfig describes the public site the sitemaps are generated for.
// URL may be empty at boot; sitemap requests then fail with a configuration error.
type SiteConfig struct {
	URL string `json:"url"`
}

// DatabaseConfig contains database-related configuration
type DatabaseConfig struct {
	Path string `json:"path"`
}

// CatalogConfig contains video catalog configuration
type CatalogConfig struct {
	SeedPath string `json:"seed_path"`
	// RefreshInterval re-syncs the catalog with SeedPath; zero disables it
	RefreshInterval time.Duration `json:"refresh_interval"`
}

// FeatureConfig contains feature-specific configuration
type FeatureConfig struct {
	VideoSitemap bool `json:"video_sitemap"`
	ImageSitemap bool `json:"image_sitemap"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvAsInt("SITEMAP_PORT", 4000),
			Host: getEnvOrDefault("SITEMAP_HOST", "0.0.0.0"),
		},
		Site: SiteConfig{
			URL: getEnvOrDefault("SITEMAP_SITE_URL", ""),
		},
		Database: DatabaseConfig{
			Path: getEnvOrDefault("SITEMAP_DB_PATH", "./catalog.db"),
		},
		Catalog: CatalogConfig{
			SeedPath:        getEnvOrDefault("SITEMAP_CATALOG_SEED", ""),
			RefreshInterval: getEnvAsDuration("SITEMAP_CATALOG_REFRESH", 0),
		},
		Features: FeatureConfig{
			VideoSitemap: getEnvAsBool("SITEMAP_ENABLE_VIDEO", true),
			ImageSitemap: getEnvAsBool("SITEMAP_ENABLE_IMAGE", true),
		},
		LogLevel: getEnvOrDefault("SITEMAP_LOG_LEVEL", "info"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return NewConfigurationError(fmt.Sprintf("invalid server port: %d", c.Server.Port), nil)
	}

	if c.Database.Path == "" {
		return NewConfigurationError("database path is required", nil)
	}

	if c.Site.URL != "" {
		u, err := url.Parse(c.Site.URL)
		if err != nil {
			return NewConfigurationError("site URL is not a valid URL", err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return NewConfigurationError(fmt.Sprintf("site URL must be absolute http(s): %q", c.Site.URL), nil)
		}
	}

	if c.Catalog.RefreshInterval < 0 {
		return NewConfigurationError("catalog refresh interval must not be negative", nil)
	}

	if c.Catalog.RefreshInterval > 0 && c.Catalog.SeedPath == "" {
		return NewConfigurationError("catalog refresh requires a seed file", nil)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return NewConfigurationError("invalid log level", err)
	}

	return nil
}

// ParseLevel maps a textual level to a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
