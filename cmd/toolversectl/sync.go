// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/toolverse/internal/datasync"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch the CMS once and write the snapshot store",
		Long: `Runs a single refresh against Notion, merging the bundled dataset when the
CMS returns fewer than sync.min_records tools, and writes the result to the
snapshot store. Requires NOTION_TOKEN and NOTION_TOOLS_DATABASE_ID.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openDataEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			snap, err := env.svc.Refresh(cmd.Context())
			if errors.Is(err, datasync.ErrNotionDisabled) {
				return fmt.Errorf("notion is not configured: set NOTION_TOKEN and NOTION_TOOLS_DATABASE_ID")
			}
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			st := env.svc.Status()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source:       %s\n", snap.Source)
			fmt.Fprintf(out, "tools:        %d (notion %d, bundled %d)\n", st.ToolCount, st.NotionCount, st.StaticCount)
			fmt.Fprintf(out, "posts:        %d\n", st.PostCount)
			fmt.Fprintf(out, "duration:     %dms\n", st.DurationMS)
			fmt.Fprintf(out, "persisted:    %t\n", env.cfg.Store.Enabled)
			return nil
		},
	}
}
