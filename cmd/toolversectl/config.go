// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/toolverse/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			source := config.ConfigFile()
			if source == "" {
				source = "defaults and environment"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "configuration OK (%s)\n", source)
			if !cfg.Notion.Enabled() {
				fmt.Fprintln(cmd.OutOrStdout(), "note: notion is not configured, the bundled dataset will be served")
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			redacted := *cfg
			if redacted.Notion.Token != "" {
				redacted.Notion.Token = "********"
			}
			if redacted.Server.AdminToken != "" {
				redacted.Server.AdminToken = "********"
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(redacted)
		},
	}

	cmd.AddCommand(validate, show)
	return cmd
}
