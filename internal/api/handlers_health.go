// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/toolverse/internal/cache"
	"github.com/tomtom215/toolverse/internal/models"
)

// HealthStatus is the data of GET /health.
type HealthStatus struct {
	Status        string      `json:"status"`
	Source        string      `json:"source,omitempty"`
	ToolCount     int         `json:"tool_count"`
	NotionEnabled bool        `json:"notion_enabled"`
	LastSync      *time.Time  `json:"last_sync,omitempty"`
	LastError     string      `json:"last_error,omitempty"`
	Uptime        float64     `json:"uptime_seconds"`
	Cache         cache.Stats `json:"response_cache"`
}

// Health returns overall status. It is "healthy" when the index came from
// Notion, "degraded" when it is running on merged or bundled data or the
// last sync failed, and "starting" before any index is loaded. The status
// code is always 200; use /health/ready for routing decisions.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	st := h.data.Status()
	health := HealthStatus{
		Status:        "starting",
		NotionEnabled: st.NotionEnabled,
		LastError:     st.LastError,
		Uptime:        time.Since(h.startTime).Seconds(),
		Cache:         h.cache.GetStats(),
	}
	if !st.LastSync.IsZero() {
		t := st.LastSync
		health.LastSync = &t
	}
	if idx := h.index.Load(); idx != nil {
		health.Source = string(idx.Source())
		health.ToolCount = idx.Len()
		health.Status = "healthy"
		if st.LastError != "" || idx.Source() != models.SourceNotion {
			health.Status = "degraded"
		}
	}
	NewResponseWriter(w, r).Success(health)
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK once a directory index is loaded, 503 before that.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	idx := h.index.Load()
	if idx == nil {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "not ready",
			map[string]interface{}{"index_loaded": false})
		return
	}
	rw.Success(map[string]interface{}{
		"ready":      true,
		"source":     idx.Source(),
		"tool_count": idx.Len(),
	})
}
