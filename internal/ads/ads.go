// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

// Package ads rotates sponsored banner placements across the page slots
// and counts impressions and clicks.
package ads

import (
	"math/rand/v2"
	"time"

	"github.com/tomtom215/toolverse/internal/metrics"
	"github.com/tomtom215/toolverse/internal/models"
)

// Option configures a Rotator.
type Option func(*Rotator)

// WithIntN replaces the random source. f must return a value in [0, n).
func WithIntN(f func(n int) int) Option {
	return func(r *Rotator) { r.intN = f }
}

// Rotator picks placements. It is immutable after New and safe for
// concurrent use.
type Rotator struct {
	bySlot map[string][]models.AdPlacement
	byID   map[string]models.AdPlacement
	intN   func(n int) int
}

// New indexes placements by slot and ID.
func New(placements []models.AdPlacement, opts ...Option) *Rotator {
	r := &Rotator{
		bySlot: make(map[string][]models.AdPlacement),
		byID:   make(map[string]models.AdPlacement, len(placements)),
		intN:   rand.IntN,
	}
	for _, p := range placements {
		if _, dup := r.byID[p.ID]; dup {
			continue
		}
		r.byID[p.ID] = p
		r.bySlot[p.Slot] = append(r.bySlot[p.Slot], p)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Live returns the placements of slot that can be shown at now.
func (r *Rotator) Live(slot string, now time.Time) []models.AdPlacement {
	var live []models.AdPlacement
	for _, p := range r.bySlot[slot] {
		if p.LiveAt(now) {
			live = append(live, p)
		}
	}
	return live
}

// Pick chooses one live placement for slot, with probability proportional
// to its weight, and counts an impression.
func (r *Rotator) Pick(slot string, now time.Time) (models.AdPlacement, bool) {
	live := r.Live(slot, now)
	if len(live) == 0 {
		return models.AdPlacement{}, false
	}

	total := 0
	for _, p := range live {
		total += p.Weight
	}
	n := r.intN(total)
	chosen := live[len(live)-1]
	for _, p := range live {
		if n < p.Weight {
			chosen = p
			break
		}
		n -= p.Weight
	}

	metrics.RecordAdImpression(slot, chosen.ID)
	return chosen, true
}

// Click counts a click and returns the target URL. Placements outside
// their window still redirect, since the banner may have been rendered
// before it expired.
func (r *Rotator) Click(id string) (string, bool) {
	p, ok := r.byID[id]
	if !ok || p.TargetURL == "" {
		return "", false
	}
	metrics.RecordAdClick(id)
	return p.TargetURL, true
}

// InFeed returns the list indexes before which an in-feed ad goes, one
// after every `every` items. No ad follows the last item.
func InFeed(n, every int) []int {
	if every <= 0 || n <= every {
		return nil
	}
	positions := make([]int, 0, n/every)
	for p := every; p < n; p += every {
		positions = append(positions, p)
	}
	return positions
}
