package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads the configuration from file and environment. Without an explicit
// configPath a missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".lenscms"))
		}

		// Check /etc
		v.AddConfigPath("/etc/lenscms/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && configPath == "":
			// environment and defaults only
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("config file not found: %w", err)
		default:
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// envBindings maps config keys to the environment variables that override
// them, in priority order.
var envBindings = map[string][]string{
	"strapi.url":         {"STRAPI_URL", "NEXT_PUBLIC_STRAPI_URL"},
	"strapi.token":       {"STRAPI_API_TOKEN"},
	"sanity.project_id":  {"SANITY_PROJECT_ID", "NEXT_PUBLIC_SANITY_PROJECT_ID"},
	"sanity.dataset":     {"SANITY_DATASET", "NEXT_PUBLIC_SANITY_DATASET"},
	"sanity.api_version": {"SANITY_API_VERSION"},
	"sanity.token":       {"SANITY_API_TOKEN"},
	"content.backend":    {"CONTENT_BACKEND"},
	"cache.redis.addr":   {"REDIS_ADDR"},
}

func bindEnv(v *viper.Viper) error {
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return err
		}
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Strapi defaults
	v.SetDefault("strapi.url", "http://localhost:1337")
	v.SetDefault("strapi.timeout", "30s")

	// Sanity defaults
	v.SetDefault("sanity.dataset", "production")
	v.SetDefault("sanity.api_version", "2024-01-01")
	v.SetDefault("sanity.use_cdn", true)
	v.SetDefault("sanity.timeout", "30s")

	// Content defaults
	v.SetDefault("content.backend", BackendStrapi)
	v.SetDefault("content.fallback", true)
	v.SetDefault("content.home_articles", 3)
	v.SetDefault("content.revalidate", "60s")

	// Cache defaults
	v.SetDefault("cache.backend", CacheMemory)
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.prefix", "lenscms:response:")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Strapi.URL == "" {
		return fmt.Errorf("strapi.url is required")
	}
	if u, err := url.Parse(cfg.Strapi.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("strapi.url must be an absolute URL: %s", cfg.Strapi.URL)
	}

	switch cfg.Content.Backend {
	case BackendStrapi:
	case BackendSanity:
		if cfg.Sanity.ProjectID == "" {
			return fmt.Errorf("sanity.project_id is required when content.backend is sanity")
		}
	default:
		return fmt.Errorf("invalid content backend: %s (must be 'strapi' or 'sanity')", cfg.Content.Backend)
	}

	if cfg.Content.HomeArticles < 0 {
		return fmt.Errorf("content.home_articles must not be negative")
	}

	switch cfg.Cache.Backend {
	case CacheNone:
	case CacheMemory:
		if cfg.Cache.Size <= 0 {
			return fmt.Errorf("cache.size must be positive")
		}
	case CacheRedis:
		if cfg.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required when cache.backend is redis")
		}
	default:
		return fmt.Errorf("invalid cache backend: %s (must be 'none', 'memory' or 'redis')", cfg.Cache.Backend)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
