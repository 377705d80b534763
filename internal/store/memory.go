// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package store

import (
	"context"
	"sync"
)

// MemoryStore keeps the snapshot in process memory. It is used when
// persistence is disabled; the snapshot still outlives the memory cache
// TTL but not a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	snap   *Snapshot
	closed bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the stored snapshot with a copy of snap.
func (m *MemoryStore) Save(_ context.Context, snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	c := snap.Clone()
	c.Version = SnapshotVersion
	m.snap = c
	return nil
}

// Load returns a copy of the stored snapshot.
func (m *MemoryStore) Load(_ context.Context) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	if m.snap == nil {
		return nil, ErrSnapshotNotFound
	}
	return m.snap.Clone(), nil
}

// Close marks the store closed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
