// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/toolverse/internal/datasync"
	"github.com/tomtom215/toolverse/internal/logging"
	"github.com/tomtom215/toolverse/internal/models"
)

// AdminTokenHeader carries the token for POST /sync.
const AdminTokenHeader = "X-Admin-Token"

// SyncStatusResponse is the data of GET /sync/status.
type SyncStatusResponse struct {
	models.SyncStatus
	ManagerRunning bool       `json:"manager_running"`
	LastManagerRun *time.Time `json:"last_manager_sync,omitempty"`
	IndexSource    string     `json:"index_source,omitempty"`
	IndexTools     int        `json:"index_tools"`
	IndexUpdatedAt *time.Time `json:"index_updated_at,omitempty"`
}

// SyncStatus handles GET /api/v1/sync/status
func (h *Handler) SyncStatus(w http.ResponseWriter, r *http.Request) {
	resp := SyncStatusResponse{SyncStatus: h.data.Status()}
	if h.sync != nil {
		resp.ManagerRunning = h.sync.Running()
		if t := h.sync.LastSyncTime(); !t.IsZero() {
			resp.LastManagerRun = &t
		}
	}
	if idx := h.index.Load(); idx != nil {
		resp.IndexSource = string(idx.Source())
		resp.IndexTools = idx.Len()
		if t := idx.UpdatedAt(); !t.IsZero() {
			resp.IndexUpdatedAt = &t
		}
	}
	w.Header().Set("Cache-Control", "no-store")
	NewResponseWriter(w, r).Success(resp)
}

// TriggerSync handles POST /api/v1/sync. The sync runs in the background;
// poll /sync/status for the outcome.
func (h *Handler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	log := logging.Ctx(r.Context())

	if err := h.checkAdminToken(r); err != nil {
		log.Warn().Str("remote_addr", sanitizeLogValue(r.RemoteAddr)).Msg("Sync trigger rejected: bad admin token")
		rw.Unauthorized(err.Error())
		return
	}
	if h.sync == nil {
		rw.ServiceUnavailable("sync manager is not configured")
		return
	}

	switch err := h.sync.TriggerSync(); {
	case errors.Is(err, datasync.ErrSyncInProgress):
		rw.Conflict(err.Error())
	case errors.Is(err, datasync.ErrNotRunning):
		rw.ServiceUnavailable(err.Error())
	case err != nil:
		rw.InternalError("Failed to trigger sync", err)
	default:
		log.Info().Msg("Manual sync triggered")
		rw.Accepted(map[string]interface{}{
			"message":    "sync started",
			"status_url": "/api/v1/sync/status",
		})
	}
}

// checkAdminToken passes every request when no token is configured.
func (h *Handler) checkAdminToken(r *http.Request) error {
	want := h.config.Server.AdminToken
	if want == "" {
		return nil
	}
	got := r.Header.Get(AdminTokenHeader)
	if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		return ErrAdminTokenInvalid
	}
	return nil
}
