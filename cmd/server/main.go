// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/toolverse/internal/api"
	"github.com/tomtom215/toolverse/internal/catalog"
	"github.com/tomtom215/toolverse/internal/config"
	"github.com/tomtom215/toolverse/internal/datasync"
	"github.com/tomtom215/toolverse/internal/logging"
	"github.com/tomtom215/toolverse/internal/notion"
	"github.com/tomtom215/toolverse/internal/store"
	"github.com/tomtom215/toolverse/internal/supervisor"
	"github.com/tomtom215/toolverse/internal/supervisor/services"
	"github.com/tomtom215/toolverse/internal/translate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		App:       "toolverse",
		Output:    os.Stderr,
	})

	logging.Info().
		Bool("notion_enabled", cfg.Notion.Enabled()).
		Bool("store_enabled", cfg.Store.Enabled).
		Dur("sync_interval", cfg.Sync.Interval).
		Str("environment", cfg.Server.Environment).
		Msg("Starting ToolVerse")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load bundled catalog: %w", err)
	}

	tr := translate.Default()
	if cfg.Translate.OverridesPath != "" {
		tr, err = translate.NewFromFile(cfg.Translate.OverridesPath)
		if err != nil {
			return fmt.Errorf("load translation overrides: %w", err)
		}
	}

	snapshots, err := store.Open(&cfg.Store)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer func() {
		if err := snapshots.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing snapshot store")
		}
	}()

	opts := datasync.Options{
		Store:      snapshots,
		Catalog:    cat,
		Translator: tr,
	}
	// A nil *notion.Client stored in the interface would not compare equal
	// to nil, so the field is only set when Notion is configured.
	if cfg.Notion.Enabled() {
		opts.Notion = notion.New(&cfg.Notion)
	}

	svc, err := datasync.NewService(cfg, opts)
	if err != nil {
		return fmt.Errorf("create data sync service: %w", err)
	}
	defer svc.Close()
	manager := datasync.NewManager(svc, cfg.Sync.Interval)

	handler := api.NewHandler(cfg, svc, manager)
	defer handler.Close()
	manager.SetOnSyncCompleted(handler.OnSyncCompleted)

	// Serve the persisted or bundled dataset without touching the CMS. The
	// manager's initial sync delivers live data through OnSyncCompleted.
	idx := handler.LoadIndex(ctx)
	logging.Info().Int("tools", idx.Len()).Str("source", string(idx.Source())).Msg("Directory index loaded")

	watchConfig()

	router := api.NewRouter(handler, cfg)
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfigFrom(cfg))
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if gc, ok := snapshots.(store.GarbageCollector); ok {
		tree.AddDataService(services.NewStoreGCService(gc, cfg.Store.GCInterval))
		logging.Info().Dur("interval", cfg.Store.GCInterval).Msg("Store GC service added")
	}
	tree.AddSyncService(services.NewSyncService(manager))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, u := range unstopped {
		logging.Warn().Str("service", u.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	return nil
}

// watchConfig applies logging.level changes from the config file, if one is
// in use. Other settings need a restart.
func watchConfig() {
	path := config.ConfigFile()
	if path == "" {
		return
	}
	err := config.WatchConfigFile(path, func() {
		next, err := config.Load()
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Ignoring invalid config change")
			return
		}
		logging.SetLevelString(next.Logging.Level)
		logging.Info().Str("level", next.Logging.Level).Msg("Log level reloaded")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config file watch disabled")
	}
}
