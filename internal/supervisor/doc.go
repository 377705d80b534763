// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

/*
Package supervisor provides process supervision for ToolVerse using suture v4.

The supervisor tree organizes services into three layers:

	RootSupervisor ("toolverse")
	├── DataSupervisor ("data-layer")
	│   └── StoreGCService (badger value-log GC, when the store is enabled)
	├── SyncSupervisor ("sync-layer")
	│   └── SyncService (datasync.Manager)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing sync layer, for example while Notion is unreachable, is restarted
with backoff without touching the API layer, which keeps serving the last
index it loaded.

Structured Logging:

Supervisor events (restarts, backoff, stop timeouts) are logged through
sutureslog, bridged to zerolog with logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewStoreGCService(badgerStore, 10*time.Minute))
	tree.AddSyncService(services.NewSyncService(manager))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)

See Also:

  - internal/supervisor/services: suture.Service wrappers
*/
package supervisor
