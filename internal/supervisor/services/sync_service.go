// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package services

import (
	"context"
	"fmt"
)

// StartStopManager matches the datasync.Manager lifecycle.
type StartStopManager interface {
	Start(ctx context.Context) error
	Stop() error
}

// SyncService adapts the manager's Start/Stop lifecycle to suture's Serve.
// The manager owns its goroutines; Stop waits for them.
type SyncService struct {
	manager StartStopManager
	name    string
}

// NewSyncService creates the wrapper.
//
//	manager := datasync.NewManager(svc, cfg.Sync.Interval)
//	tree.AddSyncService(services.NewSyncService(manager))
func NewSyncService(manager StartStopManager) *SyncService {
	return &SyncService{
		manager: manager,
		name:    "sync-manager",
	}
}

// Serve implements suture.Service. A Start failure is returned at once so
// suture restarts the service according to its backoff policy.
func (s *SyncService) Serve(ctx context.Context) error {
	if err := s.manager.Start(ctx); err != nil {
		return fmt.Errorf("sync manager start failed: %w", err)
	}

	<-ctx.Done()

	if err := s.manager.Stop(); err != nil {
		return fmt.Errorf("sync manager stop failed: %w", err)
	}
	return ctx.Err()
}

// String implements fmt.Stringer for logging.
func (s *SyncService) String() string {
	return s.name
}
