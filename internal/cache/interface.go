// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package cache

import "time"

// Cacher is the subset of Cache used by the sync service and the HTTP
// response cache.
type Cacher interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	SetWithTTL(key string, value interface{}, ttl time.Duration)
	Delete(key string)
	Clear()
	Len() int
	GetStats() Stats
}

var _ Cacher = (*Cache)(nil)
