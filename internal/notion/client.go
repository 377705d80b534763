// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

/*
Package notion is a small client for the Notion database query API.

Client Features:
  - Bearer token authentication and a pinned Notion-Version header
  - Client-side token bucket (golang.org/x/time/rate), Notion allows
    about 3 requests per second per integration
  - HTTP 429 handling with exponential backoff that honors Retry-After
  - Circuit breaker (sony/gobreaker) that fails fast while Notion is down
  - Cursor pagination with a page cap and repeated-cursor detection

Only database queries are implemented; pages are read from query results.
*/
package notion

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/toolverse/internal/config"
	"github.com/tomtom215/toolverse/internal/logging"
	"github.com/tomtom215/toolverse/internal/metrics"
)

const (
	// MaxPageSize is the largest page_size Notion accepts.
	MaxPageSize = 100

	defaultBaseURL = "https://api.notion.com"
	defaultVersion = "2022-06-28"
	breakerName    = "notion-api"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetry sets the 429 retry budget and the base backoff delay.
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryBaseDelay = baseDelay
	}
}

// WithBreakerSettings overrides DefaultBreakerSettings.
func WithBreakerSettings(s BreakerSettings) Option {
	return func(c *Client) { c.breakerSettings = s }
}

// Client queries Notion databases.
type Client struct {
	baseURL         string
	token           string
	version         string
	toolsDB         string
	pageSize        int
	maxPages        int
	http            *http.Client
	limiter         *rate.Limiter
	maxRetries      int           // Maximum retries for rate limiting
	retryBaseDelay  time.Duration // Base delay for exponential backoff
	breakerSettings BreakerSettings
	breaker         *breaker
	log             zerolog.Logger
}

// New creates a client from the notion config section.
func New(cfg *config.NotionConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		token:           cfg.Token,
		version:         cfg.Version,
		toolsDB:         cfg.ToolsDatabaseID,
		pageSize:        cfg.PageSize,
		maxPages:        cfg.MaxPages,
		http:            &http.Client{Timeout: cfg.RequestTimeout},
		maxRetries:      5,
		retryBaseDelay:  time.Second,
		breakerSettings: DefaultBreakerSettings(),
		log:             logging.WithComponent("notion"),
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.version == "" {
		c.version = defaultVersion
	}
	if c.pageSize <= 0 || c.pageSize > MaxPageSize {
		c.pageSize = MaxPageSize
	}
	if cfg.RequestTimeout <= 0 {
		c.http.Timeout = 15 * time.Second
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	c.limiter = rate.NewLimiter(limit, 1)

	for _, opt := range opts {
		opt(c)
	}
	c.breaker = newBreaker(breakerName, c.breakerSettings)
	return c
}

// BreakerState returns "closed", "half-open" or "open".
func (c *Client) BreakerState() string {
	return c.breaker.state()
}

// QueryDatabase fetches one page of results starting at cursor. Results are
// ordered by last_edited_time, newest first.
func (c *Client) QueryDatabase(ctx context.Context, databaseID, cursor string) (*QueryResponse, error) {
	return c.query(ctx, "query", databaseID, QueryRequest{
		StartCursor: cursor,
		PageSize:    c.pageSize,
		Sorts:       []Sort{{Timestamp: "last_edited_time", Direction: "descending"}},
	})
}

// QueryAll follows next_cursor until has_more is false. It stops early,
// keeping what it has, when the page cap is reached or a cursor repeats.
func (c *Client) QueryAll(ctx context.Context, databaseID string) ([]Page, error) {
	pages := make([]Page, 0)
	seen := make(map[string]struct{})
	cursor := ""

	for n := 1; ; n++ {
		resp, err := c.QueryDatabase(ctx, databaseID, cursor)
		if err != nil {
			return nil, fmt.Errorf("query database %s page %d: %w", databaseID, n, err)
		}
		metrics.NotionPagesFetched.WithLabelValues(databaseID).Inc()
		pages = append(pages, resp.Results...)

		next := resp.Cursor()
		switch {
		case !resp.HasMore:
			return pages, nil
		case next == "":
			c.log.Warn().Str("database", databaseID).Int("page", n).Msg("has_more without next_cursor, stopping")
			return pages, nil
		case c.maxPages > 0 && n >= c.maxPages:
			c.log.Warn().Str("database", databaseID).Int("max_pages", c.maxPages).Int("results", len(pages)).Msg("page limit reached, stopping")
			return pages, nil
		}
		if _, dup := seen[next]; dup {
			c.log.Warn().Str("database", databaseID).Str("cursor", next).Msg("cursor repeated, stopping")
			return pages, nil
		}
		seen[next] = struct{}{}
		cursor = next
	}
}

// Ping checks that the token can read the tools database.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.query(ctx, "ping", c.toolsDB, QueryRequest{PageSize: 1})
	return err
}

func (c *Client) query(ctx context.Context, operation, databaseID string, body QueryRequest) (*QueryResponse, error) {
	if databaseID == "" {
		return nil, fmt.Errorf("notion: database id is empty")
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	url := c.baseURL + "/v1/databases/" + databaseID + "/query"

	return c.breaker.execute(func() (*QueryResponse, error) {
		start := time.Now()
		resp, err := c.doRequestWithRateLimit(ctx, url, payload)
		if err != nil {
			metrics.RecordNotionRequest(operation, "error", time.Since(start))
			return nil, err
		}
		defer resp.Body.Close()
		metrics.RecordNotionRequest(operation, strconv.Itoa(resp.StatusCode), time.Since(start))

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, decodeAPIError(resp)
		}

		var out QueryResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("decode query response: %w", err)
		}
		return &out, nil
	})
}

// doRequestWithRateLimit waits on the token bucket, sends the request and
// retries HTTP 429 responses with exponential backoff (1s, 2s, 4s, ...).
// A Retry-After header overrides the computed delay.
func (c *Client) doRequestWithRateLimit(ctx context.Context, url string, payload []byte) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Notion-Version", c.version)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		metrics.NotionRateLimited.Inc()
		if attempt >= c.maxRetries {
			apiErr := decodeAPIError(resp)
			_ = resp.Body.Close()
			return nil, apiErr
		}
		_ = resp.Body.Close() // Explicitly ignore error - will retry anyway

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if d, ok := parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()); ok {
			delay = d
		}
		c.log.Debug().Int("attempt", attempt+1).Dur("delay", delay).Msg("rate limited by Notion, backing off")

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
}

// parseRetryAfter accepts delay-seconds or an HTTP date.
func parseRetryAfter(v string, now time.Time) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now); d > 0 {
			return d, true
		}
		return 0, true
	}
	return 0, false
}
