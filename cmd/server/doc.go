// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

/*
Command server runs the ToolVerse directory API.

# Startup Order

 1. Configuration: koanf defaults, config.yaml, then environment
 2. Logging: zerolog, level and format from configuration
 3. Snapshot store: BadgerDB when STORE_ENABLED=true, else in memory
 4. Data sync: Notion client (when configured), datasync.Service, Manager
 5. API: handler, initial index load, chi router
 6. Supervisor tree: store GC, sync manager, HTTP server

The API answers from the bundled catalog as soon as the index loads, so the
server is ready even when Notion is unreachable or not configured. Each
completed sync swaps in a new index and clears the response cache.

# Configuration

Common environment variables:

	NOTION_TOKEN               integration token
	NOTION_TOOLS_DATABASE_ID   tools database
	NOTION_BLOG_DATABASE_ID    blog database (optional)
	SYNC_INTERVAL              e.g. 30m
	ADMIN_TOKEN                required by POST /api/v1/sync when set
	STORE_ENABLED, STORE_PATH  persistent snapshot tier
	LOG_LEVEL, LOG_FORMAT      debug|info|warn|error, json|console

When a config file is in use, edits to logging.level are applied without a
restart.

# Signals

SIGINT and SIGTERM cancel the root context. The supervisor drains the HTTP
server for up to server.timeout and stops the sync manager; the store is
closed once the tree has returned.
*/
package main
