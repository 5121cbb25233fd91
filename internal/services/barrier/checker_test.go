package barrier

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
	results map[string]probe.Result
	calls   []string
}

func (s *stubRunner) Run(_ context.Context, name string, args []string, _ time.Duration) probe.Result {
	s.calls = append(s.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	if res, ok := s.results[name]; ok {
		return res
	}
	return probe.Result{ExitCode: 0}
}

func testConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func TestCheckerClassification(t *testing.T) {
	established := "tcp4  0  0  192.168.1.2.24800  192.168.1.100.53712  ESTABLISHED"
	listening := "tcp4  0  0  *.24800  *.*  LISTEN"

	cases := []struct {
		name       string
		netstat    probe.Result
		wantState  services.State
		wantDetail string
	}{
		{
			name:       "established connection",
			netstat:    probe.Result{Stdout: established + "\n"},
			wantState:  services.StateConnected,
			wantDetail: "Client connected",
		},
		{
			name:       "listening only",
			netstat:    probe.Result{Stdout: listening + "\n"},
			wantState:  services.StateWarning,
			wantDetail: "Listening, no client",
		},
		{
			name: "established outranks listening regardless of order",
			netstat: probe.Result{
				Stdout: listening + "\n" + established + "\n",
			},
			wantState:  services.StateConnected,
			wantDetail: "Client connected",
		},
		{
			name:       "no matching lines",
			netstat:    probe.Result{Stdout: "tcp4  0  0  *.22  *.*  LISTEN\n"},
			wantState:  services.StateDown,
			wantDetail: "Server not running",
		},
		{
			name:       "empty output",
			netstat:    probe.Result{},
			wantState:  services.StateDown,
			wantDetail: "Server not running",
		},
		{
			name:      "probe timeout",
			netstat:   probe.Result{TimedOut: true, ExitCode: -1},
			wantState: services.StateDown,
		},
		{
			name:      "command missing",
			netstat:   probe.Result{ExitCode: -1, Stderr: `exec: "netstat": executable file not found in $PATH`},
			wantState: services.StateDown,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			runner := &stubRunner{results: map[string]probe.Result{"netstat": tc.netstat}}
			checker := NewChecker(testConfig(), runner, nil)

			got := checker.Check(context.Background())
			if got.State != tc.wantState {
				t.Fatalf("state = %q, want %q (detail %q)", got.State, tc.wantState, got.Detail)
			}
			if tc.wantDetail != "" && got.Detail != tc.wantDetail {
				t.Fatalf("detail = %q, want %q", got.Detail, tc.wantDetail)
			}
			if len(got.Detail) > services.DetailLimit {
				t.Fatalf("detail exceeds limit: %q", got.Detail)
			}
		})
	}
}

func TestCheckerIsIdempotent(t *testing.T) {
	runner := &stubRunner{results: map[string]probe.Result{
		"netstat": {Stdout: "tcp4  0  0  *.22  *.*  LISTEN\n"},
	}}
	checker := NewChecker(testConfig(), runner, nil)

	first := checker.Check(context.Background())
	second := checker.Check(context.Background())
	if first != second {
		t.Fatalf("consecutive checks differ: %+v vs %+v", first, second)
	}
	if first.Detail != "Server not running" {
		t.Fatalf("unexpected detail: %q", first.Detail)
	}
}
