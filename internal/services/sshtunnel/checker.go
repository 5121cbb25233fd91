package sshtunnel

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

// Checker combines two independent signals: whether a tunnel process exists,
// and whether the remote host answers a lightweight non-interactive command.
type Checker struct {
	cfg    *config.Config
	runner probe.Runner
	logger *slog.Logger
}

// NewChecker constructs a tunnel checker.
func NewChecker(cfg *config.Config, runner probe.Runner, logger *slog.Logger) *Checker {
	return &Checker{
		cfg:    cfg,
		runner: runner,
		logger: logging.NewComponentLogger(logger, "ssh-checker"),
	}
}

// Identity implements services.Checker.
func (c *Checker) Identity() services.Identity { return services.SSH }

// Check probes process presence and remote reachability and maps the
// combination:
//
//	process + reachable  -> connected
//	reachable only       -> warning (tunnel down)
//	process only         -> warning (host unreachable)
//	neither              -> down
func (c *Checker) Check(ctx context.Context) services.Status {
	pgrepTimeout := time.Duration(c.cfg.SSH.PgrepTimeout) * time.Second
	pres := c.runner.Run(ctx, "pgrep", []string{"-f", c.cfg.TunnelPattern()}, pgrepTimeout)
	tunnelRunning := pres.Ok() && strings.TrimSpace(pres.Stdout) != ""

	checkTimeout := time.Duration(c.cfg.SSH.CheckTimeout) * time.Second
	reach := c.runner.Run(ctx, "ssh", []string{
		"-o", "ConnectTimeout=" + strconv.Itoa(c.cfg.SSH.ConnectTimeout),
		"-o", "BatchMode=yes",
		c.cfg.SSHTarget(),
		"echo", "ok",
	}, checkTimeout)
	reachable := reach.Ok()

	switch {
	case tunnelRunning && reachable:
		return services.Connected("Tunnel active")
	case reachable:
		return services.Warning("SSH OK, tunnel down")
	case tunnelRunning:
		return services.Warning("Tunnel proc exists, SSH unreachable")
	default:
		c.logger.Debug("host unreachable", logging.String("reason", reach.Failure()))
		return services.Down("Unreachable")
	}
}
