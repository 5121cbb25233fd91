package smbshare

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"relink/internal/config"
	"relink/internal/logging"
	"relink/internal/probe"
	"relink/internal/services"
)

// shareFSTypes are the mount table filesystem types recognized as network
// shares.
var shareFSTypes = []string{"smbfs", "cifs"}

// Checker inspects the system mount table for a share served by the
// configured remote host.
type Checker struct {
	cfg    *config.Config
	runner probe.Runner
	logger *slog.Logger
}

// NewChecker constructs a share checker.
func NewChecker(cfg *config.Config, runner probe.Runner, logger *slog.Logger) *Checker {
	return &Checker{
		cfg:    cfg,
		runner: runner,
		logger: logging.NewComponentLogger(logger, "smb-checker"),
	}
}

// Identity implements services.Checker.
func (c *Checker) Identity() services.Identity { return services.SMB }

// Check scans mount output for an entry sourced from the remote host with a
// recognized share filesystem type and reports the mount point as detail.
func (c *Checker) Check(ctx context.Context) services.Status {
	timeout := time.Duration(c.cfg.SMB.ProbeTimeout) * time.Second
	res := c.runner.Run(ctx, "mount", nil, timeout)
	if !res.Ok() {
		c.logger.Debug("mount probe failed", logging.String("reason", res.Failure()))
		return services.Down(services.ClipDetail("mount: " + res.Failure()))
	}

	for _, line := range strings.Split(res.Stdout, "\n") {
		if !strings.Contains(line, c.cfg.Remote.Host) || !isShareMount(line) {
			continue
		}
		return services.Connected(mountPoint(line))
	}
	return services.Down("No mount found")
}

func isShareMount(line string) bool {
	for _, fsType := range shareFSTypes {
		if strings.Contains(line, fsType) {
			return true
		}
	}
	return false
}

// mountPoint extracts the mount point from a "source on /path (type, opts)"
// mount table line.
func mountPoint(line string) string {
	_, after, found := strings.Cut(line, " on ")
	if !found {
		return "mounted"
	}
	// Linux lines read "/mnt/share type cifs (opts)": the type cut must run
	// first or the fs type leaks into the mount point. macOS lines have no
	// " type " separator and fall through to the parenthesis cut.
	if point, _, ok := strings.Cut(after, " type "); ok {
		return strings.TrimSpace(point)
	}
	if point, _, ok := strings.Cut(after, " ("); ok {
		return strings.TrimSpace(point)
	}
	return strings.TrimSpace(after)
}
