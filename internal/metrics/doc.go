// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

/*
Package metrics defines the Prometheus collectors exposed on /metrics.

Collectors are registered on the default registry through promauto at
package init, so importing the package is enough to publish them.

# Families

  - api_*: request count, latency, in-flight gauge, rate limiter rejections
  - notion_*: CMS call count by status, latency, HTTP 429s, pages fetched
  - sync_*: sync duration, failures by type, last success timestamp
  - directory_tools: tools served, labelled by source (notion, static)
  - data_fallbacks_total: datasets served from a fallback tier, by reason
  - cache_*: hits and misses per named cache (memory, response)
  - circuit_breaker_*: state, results, consecutive failures, transitions
  - ad_*: impressions per slot and clicks per placement
  - store_gc_runs_total: badger value-log GC passes

Label values are bounded: endpoints are chi route patterns, ad IDs come
from the bundled catalog, and sync errors are classified into a handful of
types by ClassifySyncError.
*/
package metrics
