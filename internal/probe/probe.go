package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"relink/internal/logging"
)

// Result captures everything a single probe produced. All failure modes
// (command missing, non-zero exit, timeout) are encoded here; Run never
// reports an error to the caller. Results are transient and owned by the
// call that produced them.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
}

// Ok reports whether the probe ran to completion with a zero exit status.
func (r Result) Ok() bool {
	return !r.TimedOut && r.ExitCode == 0
}

// Failure summarizes why the probe did not succeed, preferring the first
// stderr line over the bare exit status.
func (r Result) Failure() string {
	if r.TimedOut {
		return "timed out"
	}
	if line := firstLine(r.Stderr); line != "" {
		return line
	}
	return fmt.Sprintf("exit status %d", r.ExitCode)
}

// Runner executes external diagnostic commands. The seam exists so checkers
// and remediators can be exercised with crafted Results in tests.
type Runner interface {
	Run(ctx context.Context, name string, args []string, timeout time.Duration) Result
}

type execRunner struct {
	logger *slog.Logger
}

// NewRunner returns the Runner backed by real OS processes.
func NewRunner(logger *slog.Logger) Runner {
	return &execRunner{logger: logging.NewComponentLogger(logger, "probe")}
}

func (r *execRunner) Run(ctx context.Context, name string, args []string, timeout time.Duration) Result {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		result.TimedOut = true
		result.ExitCode = -1
	case err == nil:
		result.ExitCode = 0
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			// Start failures (command not found, permission denied) have no
			// process output; carry the reason in stderr for callers.
			result.ExitCode = -1
			if result.Stderr == "" {
				result.Stderr = err.Error()
			}
		}
	}

	r.logger.Debug("probe finished",
		logging.String("command", name),
		logging.Int("exit_code", result.ExitCode),
		logging.Bool("timed_out", result.TimedOut))
	return result
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
