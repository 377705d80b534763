// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/toolverse/internal/export"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Keep the developer's environment out of the data layer.
	t.Setenv("NOTION_TOKEN", "")
	t.Setenv("STORE_ENABLED", "false")
	t.Setenv("CONFIG_PATH", "")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTranslateCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"translate", "tag", "写作"}, "Writing"},
		{[]string{"translate", "pricing", "免费"}, "Free"},
		{[]string{"translate", "category", "聊天机器人"}, "chatbots"},
		{[]string{"translate", "description", "--name", "Acme", "--tags", "写作", "长文本阅读神器"}, "Acme is an AI tool for Writing."},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args[1:], " "), func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranslate_RequiresText(t *testing.T) {
	if _, err := runCLI(t, "translate", "tag"); err == nil {
		t.Error("translate tag without text succeeded")
	}
}

func TestExportJSON_BundledDataset(t *testing.T) {
	out, err := runCLI(t, "export", "--format", "json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	var doc export.Document
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if doc.Source != "static" {
		t.Errorf("source = %q, want static", doc.Source)
	}
	if len(doc.Tools) == 0 || len(doc.Categories) == 0 {
		t.Errorf("export has %d tools and %d categories, want both non-empty", len(doc.Tools), len(doc.Categories))
	}
}

func TestExportMarkdown_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.md")
	if _, err := runCLI(t, "export", "-o", path); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "| Tool |") {
		t.Errorf("markdown export has no tool table:\n%.400s", data)
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	if _, err := runCLI(t, "export", "--format", "xml"); err == nil {
		t.Error("export --format xml succeeded")
	}
}

func TestSync_WithoutNotion(t *testing.T) {
	_, err := runCLI(t, "sync")
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Errorf("sync error = %v, want notion not configured", err)
	}
}

func TestConfigValidate(t *testing.T) {
	out, err := runCLI(t, "config", "validate")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "configuration OK") {
		t.Errorf("output = %q", out)
	}
}

func TestConfigShow_RedactsSecrets(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "s3cret-admin")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "show"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(out.String(), "s3cret-admin") {
		t.Error("admin token printed in clear")
	}
}
