// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/toolverse/internal/config"
	"github.com/tomtom215/toolverse/internal/logging"
)

const snapshotKeyPrefix = "snapshot:v"

func snapshotKey() []byte {
	return []byte(snapshotKeyPrefix + strconv.Itoa(SnapshotVersion) + ":current")
}

// BadgerStore persists the snapshot as JSON in BadgerDB.
type BadgerStore struct {
	db       *badger.DB
	inMemory bool
	closed   atomic.Bool
}

// OpenBadger opens a store at path, or an in-memory store when inMemory is
// set (path is then ignored).
func OpenBadger(path string, inMemory bool) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", path).
		Bool("in_memory", inMemory).
		Msg("Snapshot store opened")
	return &BadgerStore{db: db, inMemory: inMemory}, nil
}

// Open returns the store selected by cfg: BadgerDB on disk or in memory,
// or a MemoryStore when persistence is disabled.
func Open(cfg *config.StoreConfig) (SnapshotStore, error) {
	if !cfg.Enabled {
		return NewMemoryStore(), nil
	}
	s, err := OpenBadger(cfg.Path, cfg.InMemory)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes snap, replacing the previous snapshot.
func (s *BadgerStore) Save(ctx context.Context, snap *Snapshot) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	out := *snap
	out.Version = SnapshotVersion
	data, err := json.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(snapshotKey(), data); err != nil {
			return fmt.Errorf("set snapshot: %w", err)
		}
		return nil
	})
}

// Load reads the current snapshot.
func (s *BadgerStore) Load(ctx context.Context) (*Snapshot, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snap Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey())
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSnapshotNotFound
		}
		if err != nil {
			return fmt.Errorf("get snapshot: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if err != nil {
		return nil, err
	}
	if snap.Version != SnapshotVersion {
		return nil, ErrSnapshotNotFound
	}
	return &snap, nil
}

// RunGC reclaims value-log space until badger reports nothing to rewrite.
func (s *BadgerStore) RunGC() error {
	if s.closed.Load() {
		return ErrClosed
	}
	if s.inMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close closes the database. Later calls return nil.
func (s *BadgerStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}
