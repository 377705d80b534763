// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/toolverse/internal/config"
)

// fakeDatabase serves a database of n pages, pageSize per response, using
// the result index as cursor.
func fakeDatabase(t *testing.T, n int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method != http.MethodPost || r.URL.Path != "/v1/databases/tools-db/query" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != "2022-06-28" {
			t.Errorf("Notion-Version = %q", got)
		}

		var req QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}
		start := 0
		if req.StartCursor != "" {
			start, _ = strconv.Atoi(req.StartCursor)
		}
		end := start + req.PageSize
		if end > n {
			end = n
		}

		resp := QueryResponse{Object: "list", Results: []Page{}}
		for i := start; i < end; i++ {
			resp.Results = append(resp.Results, Page{ID: fmt.Sprintf("page-%d", i)})
		}
		if end < n {
			next := strconv.Itoa(end)
			resp.HasMore = true
			resp.NextCursor = &next
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func testConfig(baseURL string) *config.NotionConfig {
	return &config.NotionConfig{
		Token:           "secret",
		BaseURL:         baseURL,
		Version:         "2022-06-28",
		ToolsDatabaseID: "tools-db",
		PageSize:        2,
		MaxPages:        10,
		RequestTimeout:  5 * time.Second,
	}
}

func TestQueryAll_Paginates(t *testing.T) {
	srv, calls := fakeDatabase(t, 5)
	c := New(testConfig(srv.URL))

	pages, err := c.QueryAll(context.Background(), "tools-db")
	if err != nil {
		t.Fatalf("QueryAll() error = %v", err)
	}
	if len(pages) != 5 {
		t.Fatalf("got %d pages, want 5", len(pages))
	}
	for i, p := range pages {
		if p.ID != fmt.Sprintf("page-%d", i) {
			t.Errorf("pages[%d].ID = %s", i, p.ID)
		}
	}
	if calls.Load() != 3 {
		t.Errorf("made %d calls, want 3", calls.Load())
	}
}

func TestQueryAll_EmptyDatabase(t *testing.T) {
	srv, _ := fakeDatabase(t, 0)
	c := New(testConfig(srv.URL))

	pages, err := c.QueryAll(context.Background(), "tools-db")
	if err != nil {
		t.Fatalf("QueryAll() error = %v", err)
	}
	if pages == nil || len(pages) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", pages)
	}
}

func TestQueryAll_MaxPages(t *testing.T) {
	srv, calls := fakeDatabase(t, 20)
	cfg := testConfig(srv.URL)
	cfg.MaxPages = 3
	c := New(cfg)

	pages, err := c.QueryAll(context.Background(), "tools-db")
	if err != nil {
		t.Fatalf("QueryAll() error = %v", err)
	}
	if len(pages) != 6 || calls.Load() != 3 {
		t.Errorf("got %d pages in %d calls, want 6 in 3", len(pages), calls.Load())
	}
}

func TestQueryAll_StopsOnBadCursor(t *testing.T) {
	tests := []struct {
		name   string
		cursor *string
	}{
		{"empty cursor", nil},
		{"repeated cursor", strPtr("same")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				_ = json.NewEncoder(w).Encode(QueryResponse{
					Results:    []Page{{ID: "p"}},
					HasMore:    true,
					NextCursor: tt.cursor,
				})
			}))
			defer srv.Close()

			pages, err := New(testConfig(srv.URL)).QueryAll(context.Background(), "tools-db")
			if err != nil {
				t.Fatalf("QueryAll() error = %v", err)
			}
			if calls.Load() > 2 {
				t.Errorf("loop should stop, made %d calls", calls.Load())
			}
			if len(pages) != int(calls.Load()) {
				t.Errorf("got %d pages from %d calls", len(pages), calls.Load())
			}
		})
	}
}

func TestQueryDatabase_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(QueryResponse{Results: []Page{{ID: "ok"}}})
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), WithRetry(5, time.Millisecond))
	resp, err := c.QueryDatabase(context.Background(), "tools-db", "")
	if err != nil {
		t.Fatalf("QueryDatabase() error = %v", err)
	}
	if len(resp.Results) != 1 || calls.Load() != 3 {
		t.Errorf("got %d results after %d calls", len(resp.Results), calls.Load())
	}
}

func TestQueryDatabase_RateLimitExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"object":"error","status":429,"code":"rate_limited","message":"slow down"}`))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), WithRetry(2, time.Millisecond))
	_, err := c.QueryDatabase(context.Background(), "tools-db", "")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusTooManyRequests || apiErr.Code != "rate_limited" {
		t.Errorf("APIError = %+v", apiErr)
	}
	if !apiErr.Temporary() || apiErr.MetricLabel() != "notion_rate_limited" {
		t.Error("429 should be temporary and labelled notion_rate_limited")
	}
}

func TestQueryDatabase_ContextCanceledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := New(testConfig(srv.URL)).QueryDatabase(ctx, "tools-db", "")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("backoff should end when the context does")
	}
}

func TestQueryDatabase_APIErrors(t *testing.T) {
	big := strings.Repeat("x", maxErrorBodySize+100)

	tests := []struct {
		name      string
		status    int
		body      string
		wantCode  string
		wantLabel string
		check     func(t *testing.T, e *APIError)
	}{
		{
			name:      "notion error object",
			status:    http.StatusUnauthorized,
			body:      `{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`,
			wantCode:  "unauthorized",
			wantLabel: "notion_auth",
			check: func(t *testing.T, e *APIError) {
				if e.Message != "API token is invalid." {
					t.Errorf("Message = %q", e.Message)
				}
			},
		},
		{
			name:      "plain text gateway error",
			status:    http.StatusBadGateway,
			body:      "bad gateway",
			wantLabel: "notion_unavailable",
			check: func(t *testing.T, e *APIError) {
				if e.Body != "bad gateway" {
					t.Errorf("Body = %q", e.Body)
				}
			},
		},
		{
			name:      "oversized body is truncated",
			status:    http.StatusInternalServerError,
			body:      big,
			wantLabel: "notion_unavailable",
			check: func(t *testing.T, e *APIError) {
				if !strings.HasSuffix(e.Body, "(truncated)") || len(e.Body) > maxErrorBodySize+32 {
					t.Errorf("body not truncated, len = %d", len(e.Body))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(testConfig(srv.URL)).QueryDatabase(context.Background(), "tools-db", "")
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Status != tt.status || apiErr.Code != tt.wantCode {
				t.Errorf("APIError = status %d code %q", apiErr.Status, apiErr.Code)
			}
			if apiErr.MetricLabel() != tt.wantLabel {
				t.Errorf("MetricLabel() = %q, want %q", apiErr.MetricLabel(), tt.wantLabel)
			}
			tt.check(t, apiErr)
		})
	}
}

func TestCircuitBreaker_FailsFast(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), WithBreakerSettings(BreakerSettings{MaxFailures: 2, OpenTimeout: time.Hour}))
	for i := 0; i < 2; i++ {
		if _, err := c.QueryDatabase(context.Background(), "tools-db", ""); err == nil {
			t.Fatal("expected error from failing server")
		}
	}
	if c.BreakerState() != "open" {
		t.Fatalf("BreakerState() = %q, want open", c.BreakerState())
	}

	_, err := c.QueryDatabase(context.Background(), "tools-db", "")
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("open breaker should not reach the server, calls = %d", calls.Load())
	}
}

func TestCircuitBreaker_IgnoresCanceledCallers(t *testing.T) {
	srv, _ := fakeDatabase(t, 1)
	c := New(testConfig(srv.URL), WithBreakerSettings(BreakerSettings{MaxFailures: 1, OpenTimeout: time.Hour}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.QueryDatabase(ctx, "tools-db", ""); err == nil {
		t.Fatal("expected error for canceled context")
	}
	if c.BreakerState() != "closed" {
		t.Errorf("canceled call should not trip the breaker, state = %s", c.BreakerState())
	}
}

func TestPing(t *testing.T) {
	srv, calls := fakeDatabase(t, 3)
	c := New(testConfig(srv.URL))

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("Ping should make a single call, made %d", calls.Load())
	}

	cfg := testConfig(srv.URL)
	cfg.ToolsDatabaseID = ""
	if err := New(cfg).Ping(context.Background()); err == nil {
		t.Error("Ping without a database id should fail")
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New(&config.NotionConfig{PageSize: 500})
	if c.baseURL != defaultBaseURL || c.version != defaultVersion {
		t.Errorf("defaults not applied: %s %s", c.baseURL, c.version)
	}
	if c.pageSize != MaxPageSize {
		t.Errorf("pageSize = %d, want %d", c.pageSize, MaxPageSize)
	}
	if c.http.Timeout != 15*time.Second {
		t.Errorf("timeout = %v", c.http.Timeout)
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in     string
		want   time.Duration
		wantOK bool
	}{
		{"", 0, false},
		{"3", 3 * time.Second, true},
		{"0", 0, true},
		{"soon", 0, false},
		{now.Add(10 * time.Second).Format(http.TimeFormat), 10 * time.Second, true},
		{now.Add(-time.Minute).Format(http.TimeFormat), 0, true},
	}
	for _, tt := range tests {
		got, ok := parseRetryAfter(tt.in, now)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseRetryAfter(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func strPtr(s string) *string { return &s }
