// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/toolverse/internal/config"
	"github.com/tomtom215/toolverse/internal/models"
)

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Tools: []models.Tool{
			{ID: "n-1", Name: "Kimi", Slug: "kimi", Category: "chatbots", Tags: []string{"Chatbot"}, Pricing: models.PricingFree, Source: models.SourceNotion},
			{ID: "static-claude", Name: "Claude", Slug: "claude", Category: "chatbots", Pricing: models.PricingFreemium, Source: models.SourceStatic},
		},
		Posts:       []models.BlogPost{{ID: "p1", Slug: "hello", Title: "Hello", Tags: []string{"News"}}},
		FetchedAt:   time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		Source:      models.SourceMerged,
		NotionCount: 1,
	}
}

// Both implementations share the same contract.
func testStoreContract(t *testing.T, s SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Load(ctx); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("Load() on empty store = %v, want ErrSnapshotNotFound", err)
	}

	snap := sampleSnapshot()
	if err := s.Save(ctx, snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	snap.Tools[0].Tags[0] = "mutated"

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Version != SnapshotVersion {
		t.Errorf("Version = %d", got.Version)
	}
	if len(got.Tools) != 2 || got.Tools[0].Name != "Kimi" || got.Tools[1].Source != models.SourceStatic {
		t.Errorf("tools not round-tripped: %+v", got.Tools)
	}
	if got.Tools[0].Tags[0] != "Chatbot" {
		t.Error("store must not alias the caller's slices")
	}
	if got.Source != models.SourceMerged || got.NotionCount != 1 || !got.FetchedAt.Equal(snap.FetchedAt) {
		t.Errorf("metadata not round-tripped: %+v", got)
	}
	if len(got.Posts) != 1 || got.Posts[0].Slug != "hello" {
		t.Errorf("posts not round-tripped: %+v", got.Posts)
	}

	newer := sampleSnapshot()
	newer.Tools = newer.Tools[:1]
	newer.Source = models.SourceNotion
	if err := s.Save(ctx, newer); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	got, _ = s.Load(ctx)
	if len(got.Tools) != 1 || got.Source != models.SourceNotion {
		t.Errorf("Save should replace the snapshot, got %d tools from %s", len(got.Tools), got.Source)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Load() after Close = %v, want ErrClosed", err)
	}
	if err := s.Save(ctx, snap); !errors.Is(err, ErrClosed) {
		t.Errorf("Save() after Close = %v, want ErrClosed", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestBadgerStore_InMemory(t *testing.T) {
	s, err := OpenBadger("", true)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	if err := s.RunGC(); err != nil {
		t.Errorf("RunGC() in memory mode should be a no-op, got %v", err)
	}
	testStoreContract(t, s)
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := OpenBadger(dir, false)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	if err := s.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.RunGC(); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenBadger(dir, false)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load() after reopen error = %v", err)
	}
	if len(got.Tools) != 2 {
		t.Errorf("got %d tools after reopen, want 2", len(got.Tools))
	}
}

func TestBadgerStore_CanceledContext(t *testing.T) {
	s, err := OpenBadger("", true)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Save(ctx, sampleSnapshot()); !errors.Is(err, context.Canceled) {
		t.Errorf("Save() = %v, want context.Canceled", err)
	}
}

func TestOpen_SelectsImplementation(t *testing.T) {
	s, err := Open(&config.StoreConfig{Enabled: false})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("disabled store should be a MemoryStore, got %T", s)
	}

	s, err = Open(&config.StoreConfig{Enabled: true, InMemory: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()
	if _, ok := s.(GarbageCollector); !ok {
		t.Errorf("badger store should support GC, got %T", s)
	}
}

func TestSnapshotFresh(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	snap := &Snapshot{FetchedAt: now.Add(-time.Hour)}

	if !snap.Fresh(2*time.Hour, now) {
		t.Error("1h old snapshot should be fresh with a 2h TTL")
	}
	if snap.Fresh(time.Hour, now) {
		t.Error("snapshot should be stale exactly at its TTL")
	}
	if (&Snapshot{}).Fresh(time.Hour, now) {
		t.Error("zero FetchedAt should never be fresh")
	}
	var nilSnap *Snapshot
	if nilSnap.Fresh(time.Hour, now) {
		t.Error("nil snapshot should not be fresh")
	}
	if snap.Age(now) != time.Hour {
		t.Errorf("Age() = %v", snap.Age(now))
	}
}
