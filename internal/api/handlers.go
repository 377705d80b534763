// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package api

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/toolverse/internal/ads"
	"github.com/tomtom215/toolverse/internal/cache"
	"github.com/tomtom215/toolverse/internal/catalog"
	"github.com/tomtom215/toolverse/internal/config"
	"github.com/tomtom215/toolverse/internal/directory"
	"github.com/tomtom215/toolverse/internal/logging"
	"github.com/tomtom215/toolverse/internal/metrics"
	"github.com/tomtom215/toolverse/internal/models"
	"github.com/tomtom215/toolverse/internal/store"
)

// DataSource provides the current snapshot. Implemented by datasync.Service.
type DataSource interface {
	// Cached returns the best snapshot available without a CMS fetch. It
	// never returns nil.
	Cached(ctx context.Context) *store.Snapshot

	// Status returns the outcome of the most recent sync.
	Status() models.SyncStatus

	// Catalog returns the bundled dataset (categories, comparisons, ads).
	Catalog() *catalog.Catalog
}

// SyncTrigger starts background syncs. Implemented by datasync.Manager.
type SyncTrigger interface {
	TriggerSync() error
	LastSyncTime() time.Time
	Running() bool
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, index and cache management
//   - handlers_helpers.go: query parameter parsing
//   - handlers_health.go: health probes
//   - handlers_tools.go: tools, categories, comparisons, blog and search
//   - handlers_ads.go: ad placements and click redirects
//   - handlers_seo.go: JSON-LD, sitemap and robots
//   - handlers_sync.go: sync status and manual trigger
type Handler struct {
	config    *config.Config
	data      DataSource
	sync      SyncTrigger
	ads       *ads.Rotator
	cache     *cache.Cache
	index     atomic.Pointer[directory.Index]
	loadMu    sync.Mutex
	startTime time.Time
	now       func() time.Time
}

// NewHandler creates a new API handler. syncMgr may be nil, in which case
// POST /sync answers 503.
//
// The handler starts without an index. Call LoadIndex during startup, or
// let the first sync deliver one through OnSyncCompleted.
//
// Example:
//
//	handler := api.NewHandler(cfg, svc, mgr)
//	mgr.SetOnSyncCompleted(handler.OnSyncCompleted)
//	handler.LoadIndex(ctx)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(":8080", router.SetupChi())
func NewHandler(cfg *config.Config, data DataSource, syncMgr SyncTrigger) *Handler {
	h := &Handler{
		config:    cfg,
		data:      data,
		sync:      syncMgr,
		startTime: time.Now(),
		now:       time.Now,
		cache: cache.New(cfg.Cache.ResponseTTL,
			cache.WithObserver(metrics.CacheObserver("response")),
		),
	}
	if cfg.Ads.Enabled {
		h.ads = ads.New(data.Catalog().Ads())
	}
	return h
}

// Close stops the response cache cleanup goroutine.
func (h *Handler) Close() {
	h.cache.Close()
}

// ClearCache invalidates all cached list responses.
func (h *Handler) ClearCache() {
	h.cache.Clear()
	logging.Debug().Msg("Response cache cleared")
}

// OnSyncCompleted is the callback invoked after each successful sync. It
// rebuilds the directory index from snap and clears the response cache.
//
// The callback is registered via Manager.SetOnSyncCompleted during startup.
func (h *Handler) OnSyncCompleted(snap *store.Snapshot) {
	idx := h.buildIndex(snap)
	h.index.Store(idx)
	h.ClearCache()
	logging.Info().
		Str("source", string(idx.Source())).
		Int("tools", idx.Len()).
		Msg("Directory index rebuilt")
}

// LoadIndex builds the index from whatever snapshot the data source holds
// right now, without waiting on the CMS. The data source falls back to the
// bundled dataset, so this always succeeds.
func (h *Handler) LoadIndex(ctx context.Context) *directory.Index {
	h.loadMu.Lock()
	defer h.loadMu.Unlock()
	if idx := h.index.Load(); idx != nil {
		return idx
	}
	idx := h.buildIndex(h.data.Cached(ctx))
	h.index.Store(idx)
	return idx
}

// Ready reports whether an index has been loaded.
func (h *Handler) Ready() bool {
	return h.index.Load() != nil
}

func (h *Handler) buildIndex(snap *store.Snapshot) *directory.Index {
	cat := h.data.Catalog()
	return directory.New(directory.Data{
		Tools:       snap.Tools,
		Categories:  cat.Categories(),
		Comparisons: cat.Comparisons(),
		Posts:       snap.Posts,
		Source:      snap.Source,
		UpdatedAt:   snap.FetchedAt,
	})
}

// currentIndex returns the loaded index, or writes a 503 and returns nil.
func (h *Handler) currentIndex(w http.ResponseWriter, r *http.Request) *directory.Index {
	if idx := h.index.Load(); idx != nil {
		return idx
	}
	NewResponseWriter(w, r).ServiceUnavailable(ErrIndexNotReady.Error())
	return nil
}

// respondCached serves key from the response cache, building and storing
// the payload with build on a miss. An entry built from an index other
// than idx is a miss, so a build that overlapped a sync never outlives it.
func (h *Handler) respondCached(w http.ResponseWriter, r *http.Request, idx *directory.Index, key string, build func() (interface{}, *PaginationMeta, error)) {
	rw := NewResponseWriter(w, r)
	if v, ok := h.cache.Get(key); ok {
		if p, ok := v.(*payload); ok && p.index == idx {
			rw.Cached(p, h.config.Cache.ResponseTTL)
			return
		}
	}

	data, pagination, err := build()
	if err != nil {
		rw.InternalError("Failed to build response", err)
		return
	}
	p, err := encodePayload(data, pagination)
	if err != nil {
		rw.InternalError("Failed to encode response", err)
		return
	}
	p.index = idx
	if h.index.Load() == idx {
		h.cache.Set(key, p)
	}
	rw.Cached(p, h.config.Cache.ResponseTTL)
}

// respondFresh is respondCached without the cache, for detail endpoints
// that still want ETag handling.
func (h *Handler) respondFresh(w http.ResponseWriter, r *http.Request, data interface{}) {
	rw := NewResponseWriter(w, r)
	p, err := encodePayload(data, nil)
	if err != nil {
		rw.InternalError("Failed to encode response", err)
		return
	}
	rw.Cached(p, h.config.Cache.ResponseTTL)
}
