// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

/*
Package services provides suture.Service wrappers for ToolVerse components.

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Available Services:

  - HTTPServerService: ListenAndServe/Shutdown with a drain timeout
  - SyncService: datasync.Manager Start/Stop
  - StoreGCService: periodic badger value-log GC

Every wrapper returns ctx.Err() after a clean shutdown and a wrapped error
on failure, so suture can tell a stop from a crash. Each also implements
fmt.Stringer so supervisor logs name the service.
*/
package services
