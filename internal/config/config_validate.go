// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

var (
	validLogLevels   = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	validLogFormats  = map[string]bool{"json": true, "console": true}
	validEnvironment = map[string]bool{"development": true, "staging": true, "production": true}
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateNotion(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateSite(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironment[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of development, staging, production; got %q", c.Server.Environment)
	}
	if c.Server.DefaultPageSize < 1 || c.Server.DefaultPageSize > c.Server.MaxPageSize {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be between 1 and API_MAX_PAGE_SIZE (%d)", c.Server.MaxPageSize)
	}
	if c.Server.Environment == "production" && c.Server.AdminToken != "" && len(c.Server.AdminToken) < 16 {
		return fmt.Errorf("ADMIN_TOKEN must be at least 16 characters in production")
	}
	return nil
}

// validateNotion validates the CMS settings (only if a token is set)
func (c *Config) validateNotion() error {
	n := c.Notion
	if n.Token == "" {
		return nil
	}
	if n.ToolsDatabaseID == "" {
		return fmt.Errorf("NOTION_TOOLS_DATABASE_ID is required when NOTION_TOKEN is set")
	}
	if err := validateHTTPURL(n.BaseURL, "NOTION_BASE_URL"); err != nil {
		return err
	}
	if n.PageSize < 1 || n.PageSize > 100 {
		return fmt.Errorf("NOTION_PAGE_SIZE must be between 1 and 100, got %d", n.PageSize)
	}
	if n.MaxPages < 1 {
		return fmt.Errorf("NOTION_MAX_PAGES must be at least 1")
	}
	if n.RequestTimeout <= 0 {
		return fmt.Errorf("NOTION_REQUEST_TIMEOUT must be positive")
	}
	if n.RateLimit <= 0 {
		return fmt.Errorf("NOTION_RATE_LIMIT must be positive")
	}
	if n.ToolProperties.Name == "" {
		return fmt.Errorf("notion.tool_properties.name is required")
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.Interval < time.Minute {
		return fmt.Errorf("SYNC_INTERVAL must be at least 1m, got %v", c.Sync.Interval)
	}
	if c.Sync.MinRecords < 0 {
		return fmt.Errorf("SYNC_MIN_RECORDS must not be negative")
	}
	if c.Sync.RetryAttempts < 1 || c.Sync.RetryAttempts > 10 {
		return fmt.Errorf("SYNC_RETRY_ATTEMPTS must be between 1 and 10")
	}
	if c.Sync.RetryDelay <= 0 {
		return fmt.Errorf("SYNC_RETRY_DELAY must be positive")
	}
	if c.Sync.Timeout <= 0 {
		return fmt.Errorf("SYNC_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.MemoryTTL <= 0 {
		return fmt.Errorf("CACHE_MEMORY_TTL must be positive")
	}
	if c.Cache.PersistentTTL < c.Cache.MemoryTTL {
		return fmt.Errorf("CACHE_PERSISTENT_TTL (%v) must not be shorter than CACHE_MEMORY_TTL (%v)",
			c.Cache.PersistentTTL, c.Cache.MemoryTTL)
	}
	if c.Cache.ResponseTTL <= 0 {
		return fmt.Errorf("CACHE_RESPONSE_TTL must be positive")
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.Enabled || c.Store.InMemory {
		return nil
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("STORE_PATH is required when STORE_ENABLED=true")
	}
	if c.Store.GCInterval <= 0 {
		return fmt.Errorf("STORE_GC_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	if c.Security.SyncRateLimitReqs < 1 {
		return fmt.Errorf("SYNC_RATE_LIMIT_REQUESTS must be at least 1")
	}
	return nil
}

func (c *Config) validateSite() error {
	if c.Site.Name == "" {
		return fmt.Errorf("SITE_NAME is required")
	}
	return validateSiteURL(c.Site.BaseURL)
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL validates that a URL is a bare http(s) base URL.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsedURL.Path)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}

// validateSiteURL is validateHTTPURL without a trailing slash, since the
// site URL is used as a prefix for canonical links.
func validateSiteURL(rawURL string) error {
	if err := validateHTTPURL(rawURL, "SITE_BASE_URL"); err != nil {
		return err
	}
	if strings.HasSuffix(rawURL, "/") {
		return fmt.Errorf("SITE_BASE_URL must not end with a slash")
	}
	return nil
}
