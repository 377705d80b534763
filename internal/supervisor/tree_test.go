// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/tomtom215/toolverse/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	tree, err := NewSupervisorTree(testLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree: %v", err)
	}
	if tree.config != DefaultTreeConfig() {
		t.Errorf("config = %+v, want defaults %+v", tree.config, DefaultTreeConfig())
	}
	if tree.Root() == nil {
		t.Error("Root() = nil")
	}
}

func TestTreeConfigFrom(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Timeout = 42 * time.Second
	if got := TreeConfigFrom(cfg).ShutdownTimeout; got != 42*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 42s", got)
	}

	cfg.Server.Timeout = 0
	if got := TreeConfigFrom(cfg).ShutdownTimeout; got != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want default 10s", got)
	}
}

func TestSupervisorTree_RunsAllLayers(t *testing.T) {
	tree, err := NewSupervisorTree(testLogger(), TreeConfig{ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatalf("NewSupervisorTree: %v", err)
	}

	data := NewMockService("store-gc")
	syncSvc := NewMockService("sync-manager")
	api := NewMockService("http-server")
	tree.AddDataService(data)
	tree.AddSyncService(syncSvc)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	waitFor(t, func() bool {
		return data.StartCount() == 1 && syncSvc.StartCount() == 1 && api.StartCount() == 1
	})
	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("tree did not stop")
	}

	for _, svc := range []*MockService{data, syncSvc, api} {
		if svc.StopCount() != 1 {
			t.Errorf("%s stopped %d times, want 1", svc, svc.StopCount())
		}
	}
}

func TestSupervisorTree_SyncFailureIsolated(t *testing.T) {
	tree, err := NewSupervisorTree(testLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("NewSupervisorTree: %v", err)
	}

	flaky := NewMockService("sync-manager")
	flaky.SetFailCount(3)
	api := NewMockService("http-server")
	tree.AddSyncService(flaky)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	waitFor(t, func() bool { return flaky.StartCount() >= 4 })
	if api.StartCount() != 1 {
		t.Errorf("api restarted %d times, want a single start", api.StartCount())
	}
	cancel()
	<-errCh
}

func TestSupervisorTree_RemoveSyncService(t *testing.T) {
	tree, err := NewSupervisorTree(testLogger(), TreeConfig{ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatalf("NewSupervisorTree: %v", err)
	}

	svc := NewMockService("sync-manager")
	token := tree.AddSyncService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	waitFor(t, func() bool { return svc.StartCount() == 1 })
	if err := tree.RemoveSyncService(token); err != nil {
		t.Fatalf("RemoveSyncService: %v", err)
	}
	waitFor(t, func() bool { return svc.StopCount() == 1 })

	cancel()
	<-errCh

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport: %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services = %v, want none", report)
	}
}
