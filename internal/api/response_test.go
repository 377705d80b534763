// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/toolverse/internal/config"
	"github.com/tomtom215/toolverse/internal/validation"
)

func TestEtagMatches(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{`"abc"`, true},
		{`W/"abc"`, true},
		{`"x", "abc"`, true},
		{`"x"`, false},
		{"*", true},
	}
	for _, tt := range tests {
		if got := etagMatches(tt.header, `"abc"`); got != tt.want {
			t.Errorf("etagMatches(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestEncodePayload_PaginationChangesTag(t *testing.T) {
	data := []string{"a", "b"}
	p1, err := encodePayload(data, newPagination(1, 2, 4, 2))
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	p2, _ := encodePayload(data, newPagination(2, 2, 4, 2))
	same, _ := encodePayload(data, newPagination(1, 2, 4, 2))

	if p1.etag == p2.etag {
		t.Error("different pages should have different tags")
	}
	if p1.etag != same.etag {
		t.Error("identical payloads should share a tag")
	}
	if p1.pagination.HasMore != true || p2.pagination.HasMore != false {
		t.Errorf("has_more = %v, %v", p1.pagination.HasMore, p2.pagination.HasMore)
	}
}

func TestResponseWriter_ValidationError(t *testing.T) {
	type params struct {
		Sort string `query:"sort" validate:"oneof=a b"`
	}
	verr := validation.ValidateStruct(&params{Sort: "c"})
	if verr == nil {
		t.Fatal("expected a validation error")
	}

	rec := httptest.NewRecorder()
	NewResponseWriter(rec, httptest.NewRequest(http.MethodGet, "/", nil)).ValidationError(verr)

	env := expectError(t, rec, http.StatusBadRequest, ErrCodeValidation)
	details, ok := env.Error.Details.(map[string]interface{})
	if !ok || details["field"] != "sort" {
		t.Errorf("details = %#v", env.Error.Details)
	}
}

func TestChiMiddlewareConfigFrom(t *testing.T) {
	c := ChiMiddlewareConfigFrom(config.SecurityConfig{
		RateLimitReqs:     10,
		RateLimitWindow:   30 * time.Second,
		SyncRateLimitReqs: 2,
		CORSOrigins:       []string{"https://toolverse.example.com"},
	})
	if c.RateLimitRequests != 10 || c.RateLimitWindow != 30*time.Second || c.SyncRateLimitRequests != 2 {
		t.Errorf("limits = %d/%s sync %d", c.RateLimitRequests, c.RateLimitWindow, c.SyncRateLimitRequests)
	}
	if len(c.CORSAllowedOrigins) != 1 || c.CORSAllowedOrigins[0] != "https://toolverse.example.com" {
		t.Errorf("origins = %v", c.CORSAllowedOrigins)
	}

	d := ChiMiddlewareConfigFrom(config.SecurityConfig{})
	if d.RateLimitRequests != 100 || d.CORSAllowedOrigins[0] != "*" {
		t.Errorf("empty section should keep defaults, got %+v", d)
	}
}
