package sshtunnel

import (
	"context"
	"log/slog"
	"time"

	"relink/internal/config"
	"relink/internal/logging"
	"relink/internal/probe"
	"relink/internal/services"
)

const killTimeout = 5 * time.Second

// Remediator replaces the tunnel process: kill whatever matches the host
// pattern, wait for the OS to release the forwarded ports, then relaunch the
// tunnel detached so it outlives this process. Success is reported at
// launch; the new tunnel is not verified to reach connected state.
type Remediator struct {
	cfg    *config.Config
	runner probe.Runner
	logger *slog.Logger
	detach func(name string, args ...string) error
}

// NewRemediator constructs a tunnel remediator.
func NewRemediator(cfg *config.Config, runner probe.Runner, logger *slog.Logger) *Remediator {
	return &Remediator{
		cfg:    cfg,
		runner: runner,
		logger: logging.NewComponentLogger(logger, "ssh-remediator"),
		detach: probe.Detach,
	}
}

// Identity implements services.Remediator.
func (r *Remediator) Identity() services.Identity { return services.SSH }

// Reconnect implements services.Remediator.
func (r *Remediator) Reconnect(ctx context.Context) services.Outcome {
	r.runner.Run(ctx, "pkill", []string{"-f", r.cfg.TunnelPattern()}, killTimeout)

	if delay := time.Duration(r.cfg.SSH.RestartDelayMS) * time.Millisecond; delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
		}
	}

	if err := r.detach("ssh", r.cfg.TunnelArgs()...); err != nil {
		r.logger.Warn("tunnel relaunch failed", logging.Error(err))
		return services.Outcome{Message: "Failed: " + services.ClipDetail(err.Error())}
	}
	r.logger.Info("tunnel relaunched", logging.String("target", r.cfg.SSHTarget()))
	return services.Outcome{Message: "Tunnel re-established"}
}
