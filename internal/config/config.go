// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

// Package config loads and validates ToolVerse configuration.
//
// Configuration is layered with koanf: built-in defaults, then an optional
// YAML file, then environment variables. See LoadWithKoanf for the search
// order and envTransformFunc for the supported variable names.
package config

import "time"

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Notion    NotionConfig    `koanf:"notion"`
	Sync      SyncConfig      `koanf:"sync"`
	Cache     CacheConfig     `koanf:"cache"`
	Store     StoreConfig     `koanf:"store"`
	Security  SecurityConfig  `koanf:"security"`
	Site      SiteConfig      `koanf:"site"`
	Ads       AdsConfig       `koanf:"ads"`
	Translate TranslateConfig `koanf:"translate"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	Environment     string        `koanf:"environment"`
	AdminToken      string        `koanf:"admin_token"` // required in X-Admin-Token for POST /sync when set
	DefaultPageSize int           `koanf:"default_page_size"`
	MaxPageSize     int           `koanf:"max_page_size"`
}

// NotionConfig holds the CMS connection settings.
type NotionConfig struct {
	Token           string            `koanf:"token"`
	BaseURL         string            `koanf:"base_url"`
	Version         string            `koanf:"version"`
	ToolsDatabaseID string            `koanf:"tools_database_id"`
	BlogDatabaseID  string            `koanf:"blog_database_id"`
	PageSize        int               `koanf:"page_size"`
	MaxPages        int               `koanf:"max_pages"`
	RequestTimeout  time.Duration     `koanf:"request_timeout"`
	RateLimit       float64           `koanf:"rate_limit"` // requests per second
	ToolProperties  ToolPropertyNames `koanf:"tool_properties"`
	BlogProperties  BlogPropertyNames `koanf:"blog_properties"`
}

// ToolPropertyNames maps tool fields to Notion property names.
type ToolPropertyNames struct {
	Name        string `koanf:"name"`
	Slug        string `koanf:"slug"`
	Description string `koanf:"description"`
	Category    string `koanf:"category"`
	Tags        string `koanf:"tags"`
	Pricing     string `koanf:"pricing"`
	PriceDetail string `koanf:"price_detail"`
	Website     string `koanf:"website"`
	Logo        string `koanf:"logo"`
	Rating      string `koanf:"rating"`
	Reviews     string `koanf:"reviews"`
	Featured    string `koanf:"featured"`
	Verified    string `koanf:"verified"`
	Published   string `koanf:"published"`
	LaunchDate  string `koanf:"launch_date"`
}

// BlogPropertyNames maps blog post fields to Notion property names.
type BlogPropertyNames struct {
	Title          string `koanf:"title"`
	Slug           string `koanf:"slug"`
	Excerpt        string `koanf:"excerpt"`
	Author         string `koanf:"author"`
	Tags           string `koanf:"tags"`
	Date           string `koanf:"date"`
	Cover          string `koanf:"cover"`
	ReadingMinutes string `koanf:"reading_minutes"`
	Published      string `koanf:"published"`
}

// Enabled reports whether the Notion source is configured.
func (n NotionConfig) Enabled() bool {
	return n.Token != "" && n.ToolsDatabaseID != ""
}

// SyncConfig holds data sync settings
type SyncConfig struct {
	Interval      time.Duration `koanf:"interval"`
	MinRecords    int           `koanf:"min_records"` // below this many CMS records the static dataset is merged in
	RetryAttempts int           `koanf:"retry_attempts"`
	RetryDelay    time.Duration `koanf:"retry_delay"`
	Timeout       time.Duration `koanf:"timeout"`
}

// CacheConfig holds TTLs for both cache tiers and the HTTP response cache.
type CacheConfig struct {
	MemoryTTL     time.Duration `koanf:"memory_ttl"`
	PersistentTTL time.Duration `koanf:"persistent_ttl"`
	ResponseTTL   time.Duration `koanf:"response_ttl"`
}

// StoreConfig holds the persistent snapshot store settings.
type StoreConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// SecurityConfig holds rate limiting and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	SyncRateLimitReqs int           `koanf:"sync_rate_limit_reqs"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// SiteConfig describes the public site for SEO documents.
type SiteConfig struct {
	Name        string `koanf:"name"`
	BaseURL     string `koanf:"base_url"`
	Description string `koanf:"description"`
	LogoURL     string `koanf:"logo_url"`
	Twitter     string `koanf:"twitter"`
	Locale      string `koanf:"locale"`
}

// AdsConfig holds ad banner settings.
type AdsConfig struct {
	Enabled     bool `koanf:"enabled"`
	InFeedEvery int  `koanf:"in_feed_every"`
}

// TranslateConfig holds translation table settings.
type TranslateConfig struct {
	OverridesPath string `koanf:"overrides_path"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Default returns the built-in configuration without reading files or the
// environment.
func Default() *Config {
	return defaultConfig()
}
