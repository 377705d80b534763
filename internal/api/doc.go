// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

/*
Package api provides the HTTP JSON surface of the directory.

The router is built on go-chi/chi. Everything lives under /api/v1 except
/metrics, /sitemap.xml and /robots.txt.

Endpoints:

  - GET  /api/v1/health, /health/live, /health/ready
  - GET  /api/v1/tools, /tools/{slug}
  - GET  /api/v1/categories, /categories/{slug}
  - GET  /api/v1/compare?tools=a,b
  - GET  /api/v1/comparisons, /comparisons/{slug}
  - GET  /api/v1/blog, /blog/{slug}
  - GET  /api/v1/search/suggest?q=&limit=
  - GET  /api/v1/ads?slot=, /ads/{id}/click
  - GET  /api/v1/seo/website
  - GET  /api/v1/sync/status
  - POST /api/v1/sync (X-Admin-Token when server.admin_token is set)

Response Envelope:

Every JSON endpoint answers with

	{
	  "success": true,
	  "data": { ... },
	  "error": {"code": "NOT_FOUND", "message": "...", "details": {...}},
	  "meta": {"timestamp": "...", "query_time_ms": 1, "pagination": {...}}
	}

Read endpoints send an ETag computed over the data payload only, so two
responses for the same data share a tag even though meta differs. A
matching If-None-Match gets 304 Not Modified.

Data Flow:

Handlers read an immutable directory.Index held in an atomic pointer.
The sync manager calls Handler.OnSyncCompleted after every successful sync,
which rebuilds the index from the new snapshot and clears the response
cache. Until the first index is loaded /health/ready reports 503.

Middleware Stack:

  - middleware.RequestID (request and correlation IDs for logging)
  - chi RealIP and Recoverer
  - go-chi/cors
  - go-chi/httprate per-IP limits, stricter on POST /sync
  - middleware.SecurityHeaders, middleware.Compression
  - middleware.PrometheusMetrics
*/
package api
