// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

/*
Package cache provides the in-memory tier of the tool data cache and the
prefix trie behind search suggestions.

# TTL cache

Cache is a map guarded by a sync.RWMutex. Every entry carries an expiry
time; Get drops expired entries lazily and a background sweeper removes
the rest every DefaultCleanupInterval until Close is called.

Two callers share it:
  - datasync keeps the translated tool list and blog posts (cache.memory_ttl)
  - api keeps serialized list responses (cache.response_ttl), cleared after
    every sync

Hit and miss counts are exposed through GetStats and, when an Observer is
registered, forwarded to Prometheus.

# Trie

Trie indexes tool names, tags and category names for /search/suggest.
Keys are walked rune by rune, so Chinese names work the same as ASCII
ones, and lookups are case-insensitive by default. Results are ranked by
insert count, then alphabetically.
*/
package cache
