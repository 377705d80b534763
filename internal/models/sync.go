// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package models

import "time"

// SyncStatus describes the most recent data sync.
type SyncStatus struct {
	LastSync          time.Time `json:"last_sync"`
	LastAttempt       time.Time `json:"last_attempt"`
	LastError         string    `json:"last_error,omitempty"`
	Source            Source    `json:"source"`
	ToolCount         int       `json:"tool_count"`
	NotionCount       int       `json:"notion_count"`
	StaticCount       int       `json:"static_count"`
	PostCount         int       `json:"post_count"`
	DurationMS        int64     `json:"duration_ms"`
	NotionEnabled     bool      `json:"notion_enabled"`
	PersistentEnabled bool      `json:"persistent_enabled"`
	Running           bool      `json:"running"`
}
