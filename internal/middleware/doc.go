// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

/*
Package middleware provides HTTP middleware components for the API server.

Key Components:

  - RequestID: UUID-based request tracking, wired into the logging context
  - PrometheusMetrics: request count, latency and in-flight instrumentation
  - Compression: pooled gzip writers for clients that accept gzip
  - SecurityHeaders: conservative response headers for JSON and XML endpoints

Every middleware has the http.HandlerFunc -> http.HandlerFunc shape. The api
package adapts them to chi with a small wrapper:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

PrometheusMetrics labels requests with the chi route pattern when one is
available (for example /api/v1/tools/{slug}) so that slugs do not explode
label cardinality. Unmatched requests are labelled "unmatched".

See Also:

  - internal/api: HTTP handlers wrapped by middleware
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
