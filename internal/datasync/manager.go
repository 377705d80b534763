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

	"github.com/tomtom215/toolverse/internal/logging"
	"github.com/tomtom215/toolverse/internal/store"
)

// Manager runs Service.Refresh on startup and then every sync.interval.
// A Manager can be started again after Stop.
type Manager struct {
	svc      *Service
	interval time.Duration
	log      zerolog.Logger

	mu              sync.RWMutex
	running         bool
	cancel          context.CancelFunc
	runCtx          context.Context
	lastSync        time.Time
	onSyncCompleted func(*store.Snapshot)

	syncing atomic.Bool
	wg      sync.WaitGroup
}

// NewManager creates a stopped Manager.
func NewManager(svc *Service, interval time.Duration) *Manager {
	return &Manager{
		svc:      svc,
		interval: interval,
		log:      logging.WithComponent("sync-manager"),
	}
}

// SetOnSyncCompleted registers a callback invoked after each successful sync.
func (m *Manager) SetOnSyncCompleted(callback func(*store.Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSyncCompleted = callback
}

// Start launches the initial sync and the periodic loop. It returns
// immediately.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("sync manager is already running")
	}
	m.runCtx, m.cancel = context.WithCancel(ctx)
	m.running = true
	runCtx := m.runCtx
	// wg.Add happens under mu so Stop cannot already be waiting.
	initial := m.syncing.CompareAndSwap(false, true)
	if initial {
		m.wg.Add(1)
	}
	if m.interval > 0 {
		m.wg.Add(1)
	}
	m.mu.Unlock()

	m.log.Info().Dur("interval", m.interval).Bool("notion", m.svc.notionEnabled()).Msg("Starting sync manager")

	if initial {
		go func() {
			defer m.wg.Done()
			m.runSync(runCtx, "initial")
		}()
	}
	if m.interval > 0 {
		go m.syncLoop(runCtx)
	}
	return nil
}

// Stop cancels any running sync and waits for background work to finish.
// Stopping a stopped Manager is a no-op.
func (m *Manager) Stop() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = false
	cancel := m.cancel
	m.mu.Unlock()

	m.log.Info().Msg("Stopping sync manager")
	cancel()
	m.wg.Wait()
	m.log.Info().Msg("Sync manager stopped")
	return nil
}

// Running reports whether Start has been called without a matching Stop.
func (m *Manager) Running() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

// LastSyncTime returns when the last successful sync finished.
func (m *Manager) LastSyncTime() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSync
}

// TriggerSync starts a sync in the background. It fails with
// ErrSyncInProgress when one is already running and ErrNotRunning before
// Start. The sync is bound to the Manager's lifetime, not the caller's.
func (m *Manager) TriggerSync() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return ErrNotRunning
	}
	if !m.syncing.CompareAndSwap(false, true) {
		m.mu.Unlock()
		return ErrSyncInProgress
	}
	m.wg.Add(1)
	runCtx := m.runCtx
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		m.runSync(runCtx, "manual")
	}()
	return nil
}

func (m *Manager) syncLoop(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !m.syncing.CompareAndSwap(false, true) {
				m.log.Debug().Msg("Previous sync still running, skipping tick")
				continue
			}
			m.runSync(ctx, "scheduled")
		}
	}
}

// runSync expects the caller to have claimed m.syncing.
func (m *Manager) runSync(ctx context.Context, trigger string) {
	defer m.syncing.Store(false)

	snap, err := m.svc.Refresh(ctx)
	switch {
	case errors.Is(err, ErrNotionDisabled):
		return
	case err != nil:
		if ctx.Err() == nil {
			m.log.Warn().Err(err).Str("trigger", trigger).Msg("Sync failed, serving cached data")
		}
		return
	}

	m.mu.Lock()
	m.lastSync = snap.FetchedAt
	callback := m.onSyncCompleted
	m.mu.Unlock()

	m.log.Debug().Str("trigger", trigger).Int("tools", len(snap.Tools)).Msg("Sync finished")
	if callback != nil {
		callback(snap)
	}
}
