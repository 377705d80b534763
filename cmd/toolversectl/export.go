// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/toolverse/internal/export"
)

func newExportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the directory as Markdown or JSON",
		Long: `Exports the current dataset: the stored snapshot when it is fresh, a live
sync when Notion is configured, and the bundled catalog otherwise.`,
		Example: `  toolversectl export --format markdown -o directory.md
  toolversectl export --format json | jq '.tools | length'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openDataEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			snap := env.svc.Current(cmd.Context())
			doc := export.Document{
				Title:       env.cfg.Site.Name,
				BaseURL:     env.cfg.Site.BaseURL,
				GeneratedAt: time.Now(),
				Source:      snap.Source,
				Categories:  env.cat.Categories(),
				Tools:       snap.Tools,
				Posts:       snap.Posts,
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := export.Write(w, format, doc); err != nil {
				return err
			}
			if output != "" && output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d tools to %s\n", len(doc.Tools), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", export.FormatMarkdown, "output format: markdown or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
