package smbshare

import (
	"context"
	"strings"
	"testing"
	"time"

	"relink/internal/config"
	"relink/internal/probe"
	"relink/internal/services"
)

type stubRunner struct {
	result probe.Result
}

func (s *stubRunner) Run(context.Context, string, []string, time.Duration) probe.Result {
	return s.result
}

func testConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func TestCheckerFindsShareMount(t *testing.T) {
	cases := []struct {
		name       string
		mountOut   string
		wantState  services.State
		wantDetail string
	}{
		{
			name:       "smbfs mount",
			mountOut:   "//user@192.168.1.100/share on /Volumes/share (smbfs, nodev, nosuid)\n",
			wantState:  services.StateConnected,
			wantDetail: "/Volumes/share",
		},
		{
			name:       "nfs source syntax",
			mountOut:   "192.168.1.100:/share on /Volumes/share (smbfs, ...)\n",
			wantState:  services.StateConnected,
			wantDetail: "/Volumes/share",
		},
		{
			name:       "linux cifs mount",
			mountOut:   "//192.168.1.100/share on /mnt/share type cifs (rw,relatime)\n",
			wantState:  services.StateConnected,
			wantDetail: "/mnt/share",
		},
		{
			name:       "host mounted but not a share fs",
			mountOut:   "192.168.1.100:/export on /mnt/nfs type nfs4 (rw)\n",
			wantState:  services.StateDown,
			wantDetail: "No mount found",
		},
		{
			name:       "share fs from a different host",
			mountOut:   "//10.0.0.9/media on /Volumes/media (smbfs)\n",
			wantState:  services.StateDown,
			wantDetail: "No mount found",
		},
		{
			name:       "empty mount table",
			mountOut:   "",
			wantState:  services.StateDown,
			wantDetail: "No mount found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			runner := &stubRunner{result: probe.Result{Stdout: tc.mountOut}}
			checker := NewChecker(testConfig(), runner, nil)

			got := checker.Check(context.Background())
			if got.State != tc.wantState || got.Detail != tc.wantDetail {
				t.Fatalf("got %+v, want {%s %s}", got, tc.wantState, tc.wantDetail)
			}
		})
	}
}

func TestCheckerDegradesOnProbeFailure(t *testing.T) {
	runner := &stubRunner{result: probe.Result{TimedOut: true, ExitCode: -1}}
	checker := NewChecker(testConfig(), runner, nil)

	got := checker.Check(context.Background())
	if got.State != services.StateDown {
		t.Fatalf("state: %q", got.State)
	}
	if !strings.Contains(got.Detail, "timed out") {
		t.Fatalf("detail: %q", got.Detail)
	}
}

func TestMountPointFallsBackWhenUnparseable(t *testing.T) {
	if got := mountPoint("garbage line smbfs"); got != "mounted" {
		t.Fatalf("fallback detail: %q", got)
	}
}

func TestMountPointCutsTypeBeforeParens(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"//192.168.1.100/share on /mnt/share type cifs (rw,relatime)", "/mnt/share"},
		{"//user@192.168.1.100/share on /Volumes/share (smbfs, nodev)", "/Volumes/share"},
		{"//192.168.1.100/share on /mnt/bare type cifs", "/mnt/bare"},
	}
	for _, tc := range cases {
		if got := mountPoint(tc.line); got != tc.want {
			t.Fatalf("mountPoint(%q) = %q, want %q", tc.line, got, tc.want)
		}
	}
}
