// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/toolverse/internal/translate"
)

func newTranslateCmd() *cobra.Command {
	var overrides string

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Look up how CMS labels are translated",
		Long: `Runs a label through the same tables the sync uses. Use --overrides to try
an override file before deploying it.`,
	}
	cmd.PersistentFlags().StringVar(&overrides, "overrides", "", "translation override file (YAML)")

	translator := func() (*translate.Translator, error) {
		if overrides == "" {
			return translate.Default(), nil
		}
		return translate.NewFromFile(overrides)
	}

	simple := func(use, short string, fn func(*translate.Translator, string) string) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <text>",
			Short: short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tr, err := translator()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), fn(tr, strings.Join(args, " ")))
				return nil
			},
		}
	}

	var (
		name string
		tags []string
	)
	description := &cobra.Command{
		Use:   "description <text>",
		Short: "Translate a tool description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := translator()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tr.Description(name, strings.Join(args, " "), tr.Tags(tags)))
			return nil
		},
	}
	description.Flags().StringVar(&name, "name", "This tool", "tool name used when the description is regenerated")
	description.Flags().StringSliceVar(&tags, "tags", nil, "tool tags used when the description is regenerated")

	cmd.AddCommand(
		simple("tag", "Translate a tag", (*translate.Translator).Tag),
		simple("pricing", "Map a pricing label to a pricing model", (*translate.Translator).Pricing),
		simple("category", "Map a category label to a category slug", (*translate.Translator).Category),
		description,
	)
	return cmd
}
