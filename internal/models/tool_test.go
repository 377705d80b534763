// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package models

import (
	"testing"
	"time"
)

func TestToolHasTag(t *testing.T) {
	tool := Tool{Tags: []string{"Writing", "Chatbot"}}

	if !tool.HasTag("writing") {
		t.Error("HasTag should ignore case")
	}
	if tool.HasTag("Video") {
		t.Error("HasTag(Video) should be false")
	}
}

func TestAdPlacementLiveAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ad   AdPlacement
		want bool
	}{
		{"active open window", AdPlacement{Active: true, Weight: 1}, true},
		{"inactive", AdPlacement{Active: false, Weight: 1}, false},
		{"zero weight", AdPlacement{Active: true, Weight: 0}, false},
		{"not started", AdPlacement{Active: true, Weight: 1, StartsAt: now.Add(time.Hour)}, false},
		{"ended", AdPlacement{Active: true, Weight: 1, EndsAt: now}, false},
		{"inside window", AdPlacement{Active: true, Weight: 1, StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ad.LiveAt(now); got != tt.want {
				t.Errorf("LiveAt() = %v, want %v", got, tt.want)
			}
		})
	}
}
