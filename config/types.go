package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Strapi  StrapiConfig  `mapstructure:"strapi"`
	Sanity  SanityConfig  `mapstructure:"sanity"`
	Content ContentConfig `mapstructure:"content"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StrapiConfig holds the content API connection details
type StrapiConfig struct {
	URL       string        `mapstructure:"url"`
	Token     string        `mapstructure:"token"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Locale    string        `mapstructure:"locale"`
	UserAgent string        `mapstructure:"user_agent"`
}

// SanityConfig holds the Sanity project and dataset
type SanityConfig struct {
	ProjectID  string        `mapstructure:"project_id"`
	Dataset    string        `mapstructure:"dataset"`
	APIVersion string        `mapstructure:"api_version"`
	UseCDN     bool          `mapstructure:"use_cdn"`
	Token      string        `mapstructure:"token"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// ContentConfig selects the content backend and its fallback behaviour
type ContentConfig struct {
	Backend      string        `mapstructure:"backend"`
	Fallback     bool          `mapstructure:"fallback"`
	HomeArticles int           `mapstructure:"home_articles"`
	Revalidate   time.Duration `mapstructure:"revalidate"`
}

// CacheConfig configures the response cache behind revalidation
type CacheConfig struct {
	Backend string      `mapstructure:"backend"`
	Size    int         `mapstructure:"size"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds the Redis connection used by the redis cache backend
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// FilterConfig contains named --where expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// Content backends
const (
	BackendStrapi = "strapi"
	BackendSanity = "sanity"
)

// Cache backends
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)
