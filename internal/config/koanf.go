// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/toolverse/config.yaml",
	"/etc/toolverse/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			Environment:     "development",
			DefaultPageSize: 24,
			MaxPageSize:     100,
		},
		Notion: NotionConfig{
			BaseURL:        "https://api.notion.com",
			Version:        "2022-06-28",
			PageSize:       100,
			MaxPages:       50,
			RequestTimeout: 15 * time.Second,
			RateLimit:      3,
			ToolProperties: ToolPropertyNames{
				Name:        "Name",
				Slug:        "Slug",
				Description: "Description",
				Category:    "Category",
				Tags:        "Tags",
				Pricing:     "Pricing",
				PriceDetail: "Price Detail",
				Website:     "Website",
				Logo:        "Logo",
				Rating:      "Rating",
				Reviews:     "Reviews",
				Featured:    "Featured",
				Verified:    "Verified",
				Published:   "Published",
				LaunchDate:  "Launch Date",
			},
			BlogProperties: BlogPropertyNames{
				Title:          "Title",
				Slug:           "Slug",
				Excerpt:        "Excerpt",
				Author:         "Author",
				Tags:           "Tags",
				Date:           "Date",
				Cover:          "Cover",
				ReadingMinutes: "Reading Minutes",
				Published:      "Published",
			},
		},
		Sync: SyncConfig{
			Interval:      30 * time.Minute,
			MinRecords:    20,
			RetryAttempts: 3,
			RetryDelay:    2 * time.Second,
			Timeout:       2 * time.Minute,
		},
		Cache: CacheConfig{
			MemoryTTL:     10 * time.Minute,
			PersistentTTL: 6 * time.Hour,
			ResponseTTL:   5 * time.Minute,
		},
		Store: StoreConfig{
			Enabled:    true,
			Path:       "/data/toolverse",
			GCInterval: 10 * time.Minute,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			SyncRateLimitReqs: 5,
			CORSOrigins:       []string{"*"},
		},
		Site: SiteConfig{
			Name:        "ToolVerse",
			BaseURL:     "https://toolverse.example.com",
			Description: "Discover, compare and choose the best AI tools.",
			Locale:      "en_US",
		},
		Ads: AdsConfig{
			Enabled:     true,
			InFeedEvery: 6,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables: mapped through envTransformFunc
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ConfigFile returns the config file Load would read, or "" when none exists.
func ConfigFile() string {
	return findConfigFile()
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths are parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"environment":           "server.environment",
	"admin_token":           "server.admin_token",
	"api_default_page_size": "server.default_page_size",
	"api_max_page_size":     "server.max_page_size",

	// Notion
	"notion_token":             "notion.token",
	"notion_base_url":          "notion.base_url",
	"notion_version":           "notion.version",
	"notion_tools_database_id": "notion.tools_database_id",
	"notion_blog_database_id":  "notion.blog_database_id",
	"notion_page_size":         "notion.page_size",
	"notion_max_pages":         "notion.max_pages",
	"notion_request_timeout":   "notion.request_timeout",
	"notion_rate_limit":        "notion.rate_limit",

	// Sync
	"sync_interval":       "sync.interval",
	"sync_min_records":    "sync.min_records",
	"sync_retry_attempts": "sync.retry_attempts",
	"sync_retry_delay":    "sync.retry_delay",
	"sync_timeout":        "sync.timeout",

	// Cache tiers
	"cache_memory_ttl":     "cache.memory_ttl",
	"cache_persistent_ttl": "cache.persistent_ttl",
	"cache_response_ttl":   "cache.response_ttl",

	// Store
	"store_enabled":     "store.enabled",
	"store_path":        "store.path",
	"store_in_memory":   "store.in_memory",
	"store_gc_interval": "store.gc_interval",

	// Security
	"rate_limit_requests":      "security.rate_limit_reqs",
	"rate_limit_window":        "security.rate_limit_window",
	"disable_rate_limit":       "security.rate_limit_disabled",
	"sync_rate_limit_requests": "security.sync_rate_limit_reqs",
	"cors_origins":             "security.cors_origins",

	// Site
	"site_name":        "site.name",
	"site_base_url":    "site.base_url",
	"site_description": "site.description",
	"site_logo_url":    "site.logo_url",
	"site_twitter":     "site.twitter",
	"site_locale":      "site.locale",

	// Ads
	"ads_enabled":       "ads.enabled",
	"ads_in_feed_every": "ads.in_feed_every",

	// Translation
	"translate_overrides_path": "translate.overrides_path",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
//	NOTION_TOKEN -> notion.token
//	HTTP_PORT    -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// WatchConfigFile calls callback whenever the file at path changes.
// The caller is responsible for reloading and swapping configuration safely.
func WatchConfigFile(path string, callback func()) error {
	return file.Provider(path).Watch(func(_ interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
