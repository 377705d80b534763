// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/toolverse/internal/catalog"
	"github.com/tomtom215/toolverse/internal/config"
	"github.com/tomtom215/toolverse/internal/datasync"
)

// fakeSync stands in for the sync manager.
type fakeSync struct {
	mu       sync.Mutex
	err      error
	triggers int
	last     time.Time
}

func (f *fakeSync) TriggerSync() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggers++
	return f.err
}

func (f *fakeSync) LastSyncTime() time.Time { return f.last }
func (f *fakeSync) Running() bool           { return true }

type testServer struct {
	handler *Handler
	sync    *fakeSync
	http    http.Handler
	cfg     *config.Config
}

// newTestServer serves the bundled catalog through a real datasync.Service
// with no CMS configured. The index is loaded unless mutate clears it.
func newTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()
	cfg := config.Default()
	cfg.Security.RateLimitDisabled = true
	if mutate != nil {
		mutate(cfg)
	}

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	svc, err := datasync.NewService(cfg, datasync.Options{Catalog: cat})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	t.Cleanup(svc.Close)

	fs := &fakeSync{}
	h := NewHandler(cfg, svc, fs)
	t.Cleanup(h.Close)
	h.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }

	return &testServer{
		handler: h,
		sync:    fs,
		http:    NewRouter(h, cfg).SetupChi(),
		cfg:     cfg,
	}
}

func (s *testServer) load(t *testing.T) *testServer {
	t.Helper()
	s.handler.LoadIndex(context.Background())
	return s
}

func (s *testServer) do(t *testing.T, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.http.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors APIResponse with the data left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) envelope {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("expected success, got error %+v", env.Error)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v\ndata: %s", err, env.Data)
	}
	return env
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) envelope {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d\nbody: %s", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Fatalf("expected success=false")
	}
	if env.Error == nil || env.Error.Code != code {
		t.Fatalf("error = %+v, want code %s", env.Error, code)
	}
	return env
}
