// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package datasync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/toolverse/internal/cache"
	"github.com/tomtom215/toolverse/internal/catalog"
	"github.com/tomtom215/toolverse/internal/config"
	"github.com/tomtom215/toolverse/internal/logging"
	"github.com/tomtom215/toolverse/internal/metrics"
	"github.com/tomtom215/toolverse/internal/models"
	"github.com/tomtom215/toolverse/internal/notion"
	"github.com/tomtom215/toolverse/internal/store"
	"github.com/tomtom215/toolverse/internal/translate"
)

var (
	// ErrNotionDisabled is returned by Refresh when no CMS is configured.
	ErrNotionDisabled = errors.New("notion source is not configured")
	// ErrSyncInProgress is returned by Manager.TriggerSync while a sync runs.
	ErrSyncInProgress = errors.New("sync already in progress")
	// ErrNotRunning is returned by Manager.TriggerSync before Start.
	ErrNotRunning = errors.New("sync manager is not running")
)

// Fallback reasons, used as the reason label of data_fallbacks_total.
const (
	ReasonNotionDisabled = "notion_disabled"
	ReasonTooFewRecords  = "too_few_records"
	ReasonStaleSnapshot  = "stale_snapshot"
	ReasonStatic         = "static"
	ReasonPostsFailed    = "posts_unavailable"
)

const memoryKey = "snapshot"

// Source fetches every page of a CMS database. *notion.Client implements it.
type Source interface {
	QueryAll(ctx context.Context, databaseID string) ([]notion.Page, error)
}

// Options carries the dependencies of a Service. Catalog is required.
type Options struct {
	// Notion is the CMS source; nil runs on the bundled dataset only.
	Notion Source
	// Store is the persistent tier; nil uses a MemoryStore.
	Store      store.SnapshotStore
	Catalog    *catalog.Catalog
	Translator *translate.Translator
	// Memory is the in-memory tier; nil creates a cache with
	// cache.memory_ttl.
	Memory cache.Cacher
	// Now replaces time.Now in tests.
	Now func() time.Time
}

// Service serves the directory dataset from a two-tier cache backed by the
// CMS, with the bundled catalog as the final fallback.
type Service struct {
	cfg     *config.Config
	notion  Source
	store   store.SnapshotStore
	catalog *catalog.Catalog
	conv    converter
	memory  cache.Cacher
	owned   *cache.Cache
	now     func() time.Time
	log     zerolog.Logger

	group      singleflight.Group
	refreshing atomic.Bool

	statusMu sync.RWMutex
	status   models.SyncStatus
}

// NewService wires a Service.
func NewService(cfg *config.Config, opts Options) (*Service, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("datasync: catalog is required")
	}
	if opts.Translator == nil {
		opts.Translator = translate.Default()
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	var owned *cache.Cache
	if opts.Memory == nil {
		owned = cache.New(cfg.Cache.MemoryTTL, cache.WithObserver(metrics.CacheObserver("memory")))
		opts.Memory = owned
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Service{
		cfg:     cfg,
		notion:  opts.Notion,
		store:   opts.Store,
		catalog: opts.Catalog,
		memory:  opts.Memory,
		owned:   owned,
		now:     opts.Now,
		log:     logging.WithComponent("datasync"),
	}
	s.conv = converter{
		tools: cfg.Notion.ToolProperties,
		blog:  cfg.Notion.BlogProperties,
		tr:    opts.Translator,
		log:   s.log,
	}
	s.status = models.SyncStatus{
		Source:            models.SourceStatic,
		NotionEnabled:     s.notionEnabled(),
		PersistentEnabled: cfg.Store.Enabled,
	}
	return s, nil
}

// Close stops the memory tier's sweeper when the Service created it. A
// cache passed in Options is left to its owner.
func (s *Service) Close() {
	if s.owned != nil {
		s.owned.Close()
	}
}

func (s *Service) notionEnabled() bool {
	return s.notion != nil && s.cfg.Notion.ToolsDatabaseID != ""
}

// Catalog returns the bundled dataset.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Current returns a copy of the dataset to serve. It never fails: each tier
// is tried in order until one yields data.
//
//  1. memory tier
//  2. persistent snapshot younger than cache.persistent_ttl
//  3. a live refresh
//  4. the newest stale snapshot
//  5. the bundled catalog
func (s *Service) Current(ctx context.Context) *store.Snapshot {
	if snap := s.fromMemory(); snap != nil {
		return snap
	}

	stale, err := s.store.Load(ctx)
	switch {
	case err == nil && stale.Fresh(s.cfg.Cache.PersistentTTL, s.now()):
		s.log.Debug().Time("fetched_at", stale.FetchedAt).Msg("Serving persistent snapshot")
		s.memory.Set(memoryKey, stale)
		return stale.Clone()
	case err != nil && !errors.Is(err, store.ErrSnapshotNotFound):
		s.log.Warn().Err(err).Msg("Failed to load persistent snapshot")
		stale = nil
	case err != nil:
		stale = nil
	}

	snap, err := s.Refresh(ctx)
	if err == nil {
		return snap
	}

	if stale != nil {
		s.log.Warn().Err(err).Dur("age", stale.Age(s.now())).Str("source", string(stale.Source)).Msg("Refresh failed, serving stale snapshot")
		metrics.RecordFallback("tools", ReasonStaleSnapshot)
		s.memory.Set(memoryKey, stale)
		return stale.Clone()
	}

	if !errors.Is(err, ErrNotionDisabled) {
		s.log.Warn().Err(err).Msg("Refresh failed and no snapshot exists, serving bundled dataset")
		metrics.RecordFallback("tools", ReasonStatic)
	}
	static := s.staticSnapshot()
	s.memory.Set(memoryKey, static)
	return static.Clone()
}

// Cached returns the best dataset available without contacting the CMS:
// the memory tier, then the persisted snapshot of any age, then the bundled
// catalog. Only a fresh snapshot is promoted to the memory tier, so a later
// Current still refreshes past a stale one.
func (s *Service) Cached(ctx context.Context) *store.Snapshot {
	if snap := s.fromMemory(); snap != nil {
		return snap
	}

	snap, err := s.store.Load(ctx)
	switch {
	case err == nil:
		if snap.Fresh(s.cfg.Cache.PersistentTTL, s.now()) {
			s.memory.Set(memoryKey, snap)
		}
		return snap.Clone()
	case !errors.Is(err, store.ErrSnapshotNotFound):
		s.log.Warn().Err(err).Msg("Failed to load persistent snapshot")
	}
	return s.staticSnapshot()
}

func (s *Service) fromMemory() *store.Snapshot {
	if v, ok := s.memory.Get(memoryKey); ok {
		if snap, ok := v.(*store.Snapshot); ok {
			return snap.Clone()
		}
	}
	return nil
}

// Tools returns the current tool list and where it came from.
func (s *Service) Tools(ctx context.Context) ([]models.Tool, models.Source) {
	snap := s.Current(ctx)
	return snap.Tools, snap.Source
}

// Posts returns the current blog previews, newest first.
func (s *Service) Posts(ctx context.Context) []models.BlogPost {
	return s.Current(ctx).Posts
}

// Invalidate drops the memory tier so the next read goes to the
// persistent tier or the CMS.
func (s *Service) Invalidate() {
	s.memory.Delete(memoryKey)
}

// Status returns the outcome of the last refresh.
func (s *Service) Status() models.SyncStatus {
	s.statusMu.RLock()
	st := s.status
	s.statusMu.RUnlock()
	st.Running = s.refreshing.Load()
	return st
}

// Refresh fetches the CMS, rebuilds the dataset and writes both tiers.
// Concurrent callers share one fetch. Without a CMS it returns
// ErrNotionDisabled and touches neither tier.
func (s *Service) Refresh(ctx context.Context) (*store.Snapshot, error) {
	v, err, _ := s.group.Do("refresh", func() (interface{}, error) {
		return s.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*store.Snapshot).Clone(), nil
}

func (s *Service) refresh(ctx context.Context) (*store.Snapshot, error) {
	if !s.notionEnabled() {
		metrics.RecordFallback("tools", ReasonNotionDisabled)
		s.log.Debug().Msg("Notion not configured, using bundled dataset")
		return nil, ErrNotionDisabled
	}

	s.refreshing.Store(true)
	defer s.refreshing.Store(false)

	start := s.now()
	if s.cfg.Sync.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Sync.Timeout)
		defer cancel()
	}

	snap, err := s.build(ctx)
	duration := s.now().Sub(start)
	metrics.RecordSyncOperation(duration, err)
	if err != nil {
		s.recordFailure(start, duration, err)
		s.log.Error().Err(err).Dur("duration", duration).Msg("Sync failed")
		return nil, err
	}

	if err := s.store.Save(ctx, snap); err != nil {
		s.log.Warn().Err(err).Msg("Failed to persist snapshot, memory tier only")
	}
	s.memory.Set(memoryKey, snap)
	s.recordSuccess(start, duration, snap)

	s.log.Info().
		Str("source", string(snap.Source)).
		Int("tools", len(snap.Tools)).
		Int("notion_tools", snap.NotionCount).
		Int("posts", len(snap.Posts)).
		Dur("duration", duration).
		Msg("Sync completed")
	return snap, nil
}

// build fetches both databases concurrently and assembles a snapshot.
func (s *Service) build(ctx context.Context) (*store.Snapshot, error) {
	var toolPages, postPages []notion.Page
	var postsErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pages, err := s.queryWithRetry(gctx, s.cfg.Notion.ToolsDatabaseID)
		if err != nil {
			return fmt.Errorf("fetch tools: %w", err)
		}
		toolPages = pages
		return nil
	})
	if blogDB := s.cfg.Notion.BlogDatabaseID; blogDB != "" {
		g.Go(func() error {
			// Blog failures degrade to bundled posts instead of failing the sync.
			postPages, postsErr = s.queryWithRetry(gctx, blogDB)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	notionTools, skipped := s.conv.convertTools(toolPages)
	notionTools = dedupeTools(notionTools)
	notionCount := len(notionTools)
	if skipped > 0 {
		s.log.Debug().Int("skipped", skipped).Msg("Skipped unpublished or invalid CMS pages")
	}

	tools := notionTools
	source := models.SourceNotion
	if notionCount < s.cfg.Sync.MinRecords {
		tools = dedupeTools(append(notionTools, s.catalog.Tools()...))
		source = models.SourceMerged
		if notionCount == 0 {
			source = models.SourceStatic
		}
		s.log.Warn().
			Int("notion_tools", notionCount).
			Int("min_records", s.cfg.Sync.MinRecords).
			Int("merged_tools", len(tools)).
			Msg("Too few CMS records, merging bundled dataset")
		metrics.RecordFallback("tools", ReasonTooFewRecords)
	}
	uniqueSlugs(tools)
	sortTools(tools)

	posts := s.catalog.Posts()
	switch {
	case postsErr != nil:
		s.log.Warn().Err(postsErr).Msg("Blog fetch failed, serving bundled posts")
		metrics.RecordFallback("posts", ReasonPostsFailed)
	case postPages != nil:
		if converted := s.conv.convertPosts(postPages); len(converted) > 0 {
			posts = converted
		}
	}
	posts = dedupePosts(posts)
	sortPosts(posts)

	return &store.Snapshot{
		Version:     store.SnapshotVersion,
		Tools:       tools,
		Posts:       posts,
		FetchedAt:   s.now(),
		Source:      source,
		NotionCount: notionCount,
	}, nil
}

// queryWithRetry retries QueryAll with exponential backoff. Errors that a
// retry cannot fix (bad token, unknown database, open circuit) return at
// once.
func (s *Service) queryWithRetry(ctx context.Context, databaseID string) ([]notion.Page, error) {
	var pages []notion.Page
	err := retryWithBackoff(ctx, s.cfg.Sync.RetryAttempts, s.cfg.Sync.RetryDelay, s.log, func() error {
		var err error
		pages, err = s.notion.QueryAll(ctx, databaseID)
		return err
	})
	return pages, err
}

func (s *Service) staticSnapshot() *store.Snapshot {
	tools := s.catalog.Tools()
	sortTools(tools)
	return &store.Snapshot{
		Version:   store.SnapshotVersion,
		Tools:     tools,
		Posts:     s.catalog.Posts(),
		FetchedAt: s.now(),
		Source:    models.SourceStatic,
	}
}

func (s *Service) recordSuccess(start time.Time, d time.Duration, snap *store.Snapshot) {
	counts := map[string]int{}
	for i := range snap.Tools {
		counts[string(snap.Tools[i].Source)]++
	}
	metrics.SetToolCounts(counts)

	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.LastSync = snap.FetchedAt
	s.status.LastAttempt = start
	s.status.LastError = ""
	s.status.Source = snap.Source
	s.status.ToolCount = len(snap.Tools)
	s.status.NotionCount = snap.NotionCount
	s.status.StaticCount = counts[string(models.SourceStatic)]
	s.status.PostCount = len(snap.Posts)
	s.status.DurationMS = d.Milliseconds()
}

func (s *Service) recordFailure(start time.Time, d time.Duration, err error) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.LastAttempt = start
	s.status.LastError = err.Error()
	s.status.DurationMS = d.Milliseconds()
}

// retryable reports whether another attempt might succeed.
func retryable(err error) bool {
	if errors.Is(err, notion.ErrCircuitOpen) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *notion.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return true
}

func retryWithBackoff(ctx context.Context, attempts int, delay time.Duration, log zerolog.Logger, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = fn()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}

		if attempt < attempts-1 {
			log.Warn().Err(err).Int("attempt", attempt+1).Int("max_attempts", attempts).Dur("delay", delay).Msg("Retry attempt")
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
			delay *= 2
		}
	}

	return fmt.Errorf("max retry attempts reached: %w", err)
}
