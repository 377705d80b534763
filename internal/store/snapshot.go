// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

// Package store persists the last good directory snapshot so it survives
// restarts and can be served while the CMS is unreachable.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/toolverse/internal/catalog"
	"github.com/tomtom215/toolverse/internal/models"
)

// SnapshotVersion is bumped when the Snapshot encoding changes. Snapshots
// written by another version are ignored.
const SnapshotVersion = 1

// ErrSnapshotNotFound is returned by Load when nothing has been saved.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrClosed is returned by a closed store.
var ErrClosed = errors.New("store closed")

// Snapshot is one synced dataset.
type Snapshot struct {
	Version     int               `json:"version"`
	Tools       []models.Tool     `json:"tools"`
	Posts       []models.BlogPost `json:"posts"`
	FetchedAt   time.Time         `json:"fetched_at"`
	Source      models.Source     `json:"source"`
	NotionCount int               `json:"notion_count"`
}

// Fresh reports whether the snapshot is younger than ttl at now.
func (s *Snapshot) Fresh(ttl time.Duration, now time.Time) bool {
	if s == nil || s.FetchedAt.IsZero() {
		return false
	}
	return now.Sub(s.FetchedAt) < ttl
}

// Age returns how old the snapshot is at now.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.Tools = make([]models.Tool, len(s.Tools))
	for i := range s.Tools {
		out.Tools[i] = catalog.CloneTool(s.Tools[i])
	}
	out.Posts = make([]models.BlogPost, len(s.Posts))
	for i, p := range s.Posts {
		p.Tags = append([]string(nil), p.Tags...)
		out.Posts[i] = p
	}
	return &out
}

// SnapshotStore persists the latest snapshot.
type SnapshotStore interface {
	Save(ctx context.Context, snap *Snapshot) error
	// Load returns ErrSnapshotNotFound when the store is empty.
	Load(ctx context.Context) (*Snapshot, error)
	Close() error
}

// GarbageCollector is implemented by stores that need periodic compaction.
type GarbageCollector interface {
	RunGC() error
}
