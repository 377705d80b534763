// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/toolverse/internal/catalog"
	"github.com/tomtom215/toolverse/internal/config"
	"github.com/tomtom215/toolverse/internal/datasync"
	"github.com/tomtom215/toolverse/internal/logging"
	"github.com/tomtom215/toolverse/internal/notion"
	"github.com/tomtom215/toolverse/internal/store"
	"github.com/tomtom215/toolverse/internal/translate"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "toolversectl",
		Short:        "ToolVerse maintenance CLI",
		Long:         "toolversectl syncs, exports and inspects the ToolVerse AI tools directory.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.configPath != "" {
				if err := os.Setenv(config.ConfigPathEnvVar, opts.configPath); err != nil {
					return err
				}
			}
			logging.Init(logging.Config{
				Level:     opts.logLevel,
				Format:    "console",
				Timestamp: true,
				App:       "toolversectl",
				Output:    cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ./config.yaml or CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newSyncCmd(),
		newExportCmd(),
		newTranslateCmd(),
		newConfigCmd(),
	)
	return cmd
}

// dataEnv is the data layer shared by sync and export.
type dataEnv struct {
	cfg   *config.Config
	cat   *catalog.Catalog
	svc   *datasync.Service
	store store.SnapshotStore
}

func (e *dataEnv) Close() error {
	e.svc.Close()
	return e.store.Close()
}

func openDataEnv() (*dataEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load bundled catalog: %w", err)
	}
	tr := translate.Default()
	if cfg.Translate.OverridesPath != "" {
		if tr, err = translate.NewFromFile(cfg.Translate.OverridesPath); err != nil {
			return nil, fmt.Errorf("load translation overrides: %w", err)
		}
	}
	snapshots, err := store.Open(&cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	opts := datasync.Options{Store: snapshots, Catalog: cat, Translator: tr}
	if cfg.Notion.Enabled() {
		opts.Notion = notion.New(&cfg.Notion)
	}
	svc, err := datasync.NewService(cfg, opts)
	if err != nil {
		_ = snapshots.Close()
		return nil, err
	}
	return &dataEnv{cfg: cfg, cat: cat, svc: svc, store: snapshots}, nil
}
