// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package datasync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/toolverse/internal/cache"
	"github.com/tomtom215/toolverse/internal/catalog"
	"github.com/tomtom215/toolverse/internal/config"
	"github.com/tomtom215/toolverse/internal/notion"
	"github.com/tomtom215/toolverse/internal/store"
)

const (
	testToolsDB = "tools-db"
	testBlogDB  = "blog-db"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

// fakeSource serves canned pages per database. Errors in errs are returned
// in order, one per call, before the pages are served.
type fakeSource struct {
	mu    sync.Mutex
	pages map[string][]notion.Page
	errs  map[string][]error
	calls map[string]int

	// block, when set, holds every call until it is closed or ctx ends.
	block   chan struct{}
	started chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pages: make(map[string][]notion.Page),
		errs:  make(map[string][]error),
		calls: make(map[string]int),
	}
}

func (f *fakeSource) QueryAll(ctx context.Context, databaseID string) ([]notion.Page, error) {
	f.mu.Lock()
	f.calls[databaseID]++
	block, started := f.block, f.started
	var err error
	if queue := f.errs[databaseID]; len(queue) > 0 {
		err, f.errs[databaseID] = queue[0], queue[1:]
	}
	pages := f.pages[databaseID]
	f.mu.Unlock()

	if started != nil {
		select {
		case started <- struct{}{}:
		default:
		}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func (f *fakeSource) callCount(databaseID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[databaseID]
}

func titleProp(s string) notion.Property {
	return notion.Property{Type: "title", Title: []notion.RichText{{Type: "text", PlainText: s}}}
}

func textProp(s string) notion.Property {
	return notion.Property{Type: "rich_text", RichText: []notion.RichText{{Type: "text", PlainText: s}}}
}

func selectProp(s string) notion.Property {
	return notion.Property{Type: "select", Select: &notion.SelectOption{Name: s}}
}

func urlProp(s string) notion.Property {
	return notion.Property{Type: "url", URL: &s}
}

func numberProp(n float64) notion.Property {
	return notion.Property{Type: "number", Number: &n}
}

func checkboxProp(b bool) notion.Property {
	return notion.Property{Type: "checkbox", Checkbox: &b}
}

func multiSelectProp(names ...string) notion.Property {
	opts := make([]notion.SelectOption, len(names))
	for i, n := range names {
		opts[i] = notion.SelectOption{Name: n}
	}
	return notion.Property{Type: "multi_select", MultiSelect: opts}
}

// toolPage builds a published tool page with the default property names.
func toolPage(id, name string, edited time.Time) notion.Page {
	return notion.Page{
		ID:             id,
		CreatedTime:    edited.Add(-time.Hour),
		LastEditedTime: edited,
		Properties: map[string]notion.Property{
			"Name":        titleProp(name),
			"Description": textProp(name + " helps teams ship faster."),
			"Category":    selectProp("聊天机器人"),
			"Tags":        multiSelectProp("写作"),
			"Pricing":     selectProp("免费"),
			"Website":     urlProp("https://example.com/" + id),
			"Rating":      numberProp(4.2),
			"Published":   checkboxProp(true),
		},
	}
}

func postPage(id, title, date string) notion.Page {
	return notion.Page{
		ID:          id,
		CreatedTime: testNow.Add(-48 * time.Hour),
		Properties: map[string]notion.Property{
			"Title":   titleProp(title),
			"Excerpt": textProp("Excerpt for " + title),
			"Date":    {Type: "date", Date: &notion.DateRange{Start: date}},
		},
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Notion.Token = "secret_test"
	cfg.Notion.ToolsDatabaseID = testToolsDB
	cfg.Notion.BlogDatabaseID = testBlogDB
	cfg.Sync.MinRecords = 3
	cfg.Sync.RetryAttempts = 1
	cfg.Sync.RetryDelay = time.Millisecond
	cfg.Sync.Timeout = 5 * time.Second
	cfg.Store.Enabled = false
	return cfg
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	return cat
}

type testEnv struct {
	svc    *Service
	src    *fakeSource
	store  *store.MemoryStore
	memory *cache.Cache
	cat    *catalog.Catalog
	cfg    *config.Config
}

// newTestEnv wires a Service around a fake source. A nil mutate keeps
// testConfig as is; withSource false runs without a CMS.
func newTestEnv(t *testing.T, withSource bool, mutate func(*config.Config)) *testEnv {
	t.Helper()
	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}

	env := &testEnv{
		src:    newFakeSource(),
		store:  store.NewMemoryStore(),
		memory: cache.New(cfg.Cache.MemoryTTL, cache.WithCleanupInterval(0)),
		cat:    testCatalog(t),
		cfg:    cfg,
	}
	t.Cleanup(env.memory.Close)

	opts := Options{
		Store:   env.store,
		Catalog: env.cat,
		Memory:  env.memory,
		Now:     func() time.Time { return testNow },
	}
	if withSource {
		opts.Notion = env.src
	}

	svc, err := NewService(cfg, opts)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	env.svc = svc
	return env
}
