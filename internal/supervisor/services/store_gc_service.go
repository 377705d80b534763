// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package services

import (
	"context"
	"errors"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/toolverse/internal/logging"
	"github.com/tomtom215/toolverse/internal/metrics"
	"github.com/tomtom215/toolverse/internal/store"
)

// StoreGCService runs value-log garbage collection on a fixed interval.
// GC errors are logged and counted but never stop the service; a closed
// store ends it.
type StoreGCService struct {
	gc       store.GarbageCollector
	interval time.Duration
	name     string
}

// NewStoreGCService creates the wrapper. A non-positive interval means 10m.
func NewStoreGCService(gc store.GarbageCollector, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		gc:       gc,
		interval: interval,
		name:     "store-gc",
	}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := s.gc.RunGC()
			metrics.RecordStoreGC(err)
			if errors.Is(err, store.ErrClosed) {
				logging.Info().Str("service", s.name).Msg("Store closed, stopping GC")
				return suture.ErrDoNotRestart
			}
			if err != nil {
				logging.Warn().Err(err).Str("service", s.name).Msg("Store GC failed")
			}
		}
	}
}

// String implements fmt.Stringer for logging.
func (s *StoreGCService) String() string {
	return s.name
}
