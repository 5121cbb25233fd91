package probe

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRunCapturesOutput(t *testing.T) {
	runner := NewRunner(nil)
	res := runner.Run(context.Background(), "sh", []string{"-c", "echo out; echo err >&2"}, 5*time.Second)

	if !res.Ok() {
		t.Fatalf("expected success, got %+v", res)
	}
	if strings.TrimSpace(res.Stdout) != "out" {
		t.Fatalf("stdout: %q", res.Stdout)
	}
	if strings.TrimSpace(res.Stderr) != "err" {
		t.Fatalf("stderr: %q", res.Stderr)
	}
}

func TestRunReportsExitCode(t *testing.T) {
	runner := NewRunner(nil)
	res := runner.Run(context.Background(), "sh", []string{"-c", "exit 3"}, 5*time.Second)

	if res.Ok() {
		t.Fatal("expected failure")
	}
	if res.ExitCode != 3 {
		t.Fatalf("exit code: %d", res.ExitCode)
	}
	if res.Failure() != "exit status 3" {
		t.Fatalf("failure summary: %q", res.Failure())
	}
}

func TestRunEnforcesTimeout(t *testing.T) {
	runner := NewRunner(nil)
	start := time.Now()
	res := runner.Run(context.Background(), "sleep", []string{"5"}, 150*time.Millisecond)
	elapsed := time.Since(start)

	if !res.TimedOut {
		t.Fatalf("expected timeout, got %+v", res)
	}
	if res.Failure() != "timed out" {
		t.Fatalf("failure summary: %q", res.Failure())
	}
	if elapsed > 2*time.Second {
		t.Fatalf("timeout not enforced promptly: %v", elapsed)
	}
}

func TestRunMissingCommand(t *testing.T) {
	runner := NewRunner(nil)
	res := runner.Run(context.Background(), "relink-no-such-command", nil, time.Second)

	if res.Ok() {
		t.Fatal("expected failure for missing command")
	}
	if res.TimedOut {
		t.Fatal("missing command is not a timeout")
	}
	if res.Failure() == "" {
		t.Fatal("expected a failure summary")
	}
}

func TestFailurePrefersStderrFirstLine(t *testing.T) {
	res := Result{ExitCode: 2, Stderr: "netstat: invalid option\nusage: netstat ..."}
	if got := res.Failure(); got != "netstat: invalid option" {
		t.Fatalf("failure summary: %q", got)
	}
}
