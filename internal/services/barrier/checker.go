package barrier

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"relink/internal/config"
	"relink/internal/logging"
	"relink/internal/probe"
	"relink/internal/services"
)

// Checker classifies the Barrier server by scanning active network
// connections for the configured port.
type Checker struct {
	cfg    *config.Config
	runner probe.Runner
	logger *slog.Logger
}

// NewChecker constructs a Barrier checker.
func NewChecker(cfg *config.Config, runner probe.Runner, logger *slog.Logger) *Checker {
	return &Checker{
		cfg:    cfg,
		runner: runner,
		logger: logging.NewComponentLogger(logger, "barrier-checker"),
	}
}

// Identity implements services.Checker.
func (c *Checker) Identity() services.Identity { return services.Barrier }

// Check scans netstat output for the Barrier port. The established pass runs
// over the full output before the listening pass: an established client
// outranks a bare listening socket regardless of line order.
func (c *Checker) Check(ctx context.Context) services.Status {
	timeout := time.Duration(c.cfg.Barrier.ProbeTimeout) * time.Second
	res := c.runner.Run(ctx, "netstat", []string{"-an"}, timeout)
	if !res.Ok() {
		c.logger.Debug("netstat probe failed", logging.String("reason", res.Failure()))
		return services.Down(services.ClipDetail("netstat: " + res.Failure()))
	}

	port := strconv.Itoa(c.cfg.Barrier.Port)
	lines := strings.Split(res.Stdout, "\n")

	for _, line := range lines {
		if strings.Contains(line, port) && strings.Contains(line, "ESTABLISHED") {
			return services.Connected("Client connected")
		}
	}
	for _, line := range lines {
		if strings.Contains(line, port) && strings.Contains(line, "LISTEN") {
			return services.Warning("Listening, no client")
		}
	}
	return services.Down("Server not running")
}
