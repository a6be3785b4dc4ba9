package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Strapi:  StrapiConfig{URL: "http://localhost:1337"},
		Content: ContentConfig{Backend: BackendStrapi, HomeArticles: 3},
		Cache:   CacheConfig{Backend: CacheMemory, Size: 256},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "Valid defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "Relative strapi url",
			mutate:  func(c *Config) { c.Strapi.URL = "localhost:1337/api" },
			wantErr: "strapi.url must be an absolute URL",
		},
		{
			name:    "Sanity backend without project",
			mutate:  func(c *Config) { c.Content.Backend = BackendSanity },
			wantErr: "sanity.project_id is required",
		},
		{
			name: "Sanity backend with project",
			mutate: func(c *Config) {
				c.Content.Backend = BackendSanity
				c.Sanity.ProjectID = "abc123"
			},
		},
		{
			name:    "Unknown backend",
			mutate:  func(c *Config) { c.Content.Backend = "wordpress" },
			wantErr: "invalid content backend: wordpress",
		},
		{
			name:    "Redis cache without address",
			mutate:  func(c *Config) { c.Cache.Backend = CacheRedis },
			wantErr: "cache.redis.addr is required",
		},
		{
			name:    "Memory cache without size",
			mutate:  func(c *Config) { c.Cache.Size = 0 },
			wantErr: "cache.size must be positive",
		},
		{
			name:   "Cache disabled",
			mutate: func(c *Config) { c.Cache = CacheConfig{Backend: CacheNone} },
		},
		{
			name:    "Invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "Invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validate() error = %v, want message containing %q", err, tt.wantErr)
			}
		})
	}
}

// isolate keeps the host's config files and environment out of Load.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, envs := range envBindings {
		for _, env := range envs {
			t.Setenv(env, "")
		}
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Strapi.URL != "http://localhost:1337" {
		t.Errorf("Strapi.URL = %q, want default", cfg.Strapi.URL)
	}
	if cfg.Strapi.Timeout != 30*time.Second {
		t.Errorf("Strapi.Timeout = %v, want 30s", cfg.Strapi.Timeout)
	}
	if !cfg.Content.Fallback {
		t.Error("Content.Fallback should default to true")
	}
	if cfg.Cache.Backend != CacheMemory {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, CacheMemory)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("NEXT_PUBLIC_STRAPI_URL", "https://public.example.com")
	t.Setenv("STRAPI_API_TOKEN", "secret")
	t.Setenv("SANITY_PROJECT_ID", "abc123")
	t.Setenv("CONTENT_BACKEND", "sanity")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Strapi.URL != "https://public.example.com" {
		t.Errorf("Strapi.URL = %q, want NEXT_PUBLIC_STRAPI_URL value", cfg.Strapi.URL)
	}
	if cfg.Strapi.Token != "secret" {
		t.Errorf("Strapi.Token = %q, want secret", cfg.Strapi.Token)
	}
	if cfg.Content.Backend != BackendSanity || cfg.Sanity.ProjectID != "abc123" {
		t.Errorf("sanity backend not picked up from environment: %+v", cfg.Content)
	}

	// STRAPI_URL wins over the public variant
	t.Setenv("STRAPI_URL", "https://private.example.com")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Strapi.URL != "https://private.example.com" {
		t.Errorf("Strapi.URL = %q, want STRAPI_URL value", cfg.Strapi.URL)
	}
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "lenscms.yaml")
	data := `strapi:
  url: https://cms.example.com
  timeout: 5s
content:
  fallback: false
cache:
  backend: redis
  redis:
    addr: redis:6379
filter:
  presets:
    bergen: 'City == "Bergen"'
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Strapi.URL != "https://cms.example.com" || cfg.Strapi.Timeout != 5*time.Second {
		t.Errorf("Strapi = %+v", cfg.Strapi)
	}
	if cfg.Content.Fallback {
		t.Error("Content.Fallback = true, want false from file")
	}
	if cfg.Cache.Redis.Addr != "redis:6379" {
		t.Errorf("Cache.Redis.Addr = %q", cfg.Cache.Redis.Addr)
	}
	if cfg.Filter.Presets["bergen"] != `City == "Bergen"` {
		t.Errorf("Filter.Presets = %v", cfg.Filter.Presets)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with a missing explicit file should fail")
	}
}
