package daemon

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"

	"relink/internal/action"
	"relink/internal/logging"
	"relink/internal/services"
	"relink/internal/status"
	"relink/internal/testsupport"
)

func testDaemon(t *testing.T, logDir string) *Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithLogDir(logDir))

	agg := status.NewAggregator(logging.NewNop(),
		staticChecker{services.Barrier, services.Connected("Client connected")},
	)
	coord := action.NewCoordinator(logging.NewNop())

	d, err := New(cfg, agg, coord, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestDaemonStartStop(t *testing.T) {
	d := testDaemon(t, t.TempDir())

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()

	if !d.Running() {
		t.Fatal("expected daemon to report running")
	}

	addr := d.Addr()
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("bad addr %q: %v", addr, err)
	}
	if host != "127.0.0.1" {
		t.Fatalf("expected loopback bind, got %q", host)
	}
	if port == "0" || port == "" {
		t.Fatalf("expected resolved port, got %q", port)
	}
	if url := d.DashboardURL(); !strings.HasPrefix(url, "http://127.0.0.1:") {
		t.Fatalf("unexpected dashboard url %q", url)
	}

	d.Stop()
	if d.Running() {
		t.Fatal("expected daemon stopped")
	}
}

func TestSecondInstanceRejected(t *testing.T) {
	dir := t.TempDir()

	first := testDaemon(t, dir)
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start first: %v", err)
	}
	defer first.Stop()

	second := testDaemon(t, dir)
	err := second.Start(context.Background())
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestLockReleasedAfterStop(t *testing.T) {
	dir := t.TempDir()

	first := testDaemon(t, dir)
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start first: %v", err)
	}
	first.Stop()

	second := testDaemon(t, dir)
	if err := second.Start(context.Background()); err != nil {
		t.Fatalf("Start after release: %v", err)
	}
	second.Stop()
}
