package barrier

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"relink/internal/config"
	"relink/internal/logging"
	"relink/internal/probe"
	"relink/internal/services"
)

const (
	kickstartTimeout = 10 * time.Second
	killTimeout      = 5 * time.Second
	remoteTimeout    = 15 * time.Second
)

// Remediator restarts the local Barrier server and the remote client. The
// two steps are independently best-effort: a failure in one does not block
// the other, and the outcome message reports both.
type Remediator struct {
	cfg    *config.Config
	runner probe.Runner
	logger *slog.Logger
	uid    func() int
}

// NewRemediator constructs a Barrier remediator.
func NewRemediator(cfg *config.Config, runner probe.Runner, logger *slog.Logger) *Remediator {
	return &Remediator{
		cfg:    cfg,
		runner: runner,
		logger: logging.NewComponentLogger(logger, "barrier-remediator"),
		uid:    os.Getuid,
	}
}

// Identity implements services.Remediator.
func (r *Remediator) Identity() services.Identity { return services.Barrier }

// Reconnect kickstarts the launchd agent, falling back to killing the server
// process (its supervisor relaunches it), then restarts the client-side
// service on the remote host over ssh.
func (r *Remediator) Reconnect(ctx context.Context) services.Outcome {
	msgs := make([]string, 0, 2)

	target := fmt.Sprintf("gui/%d/%s", r.uid(), r.cfg.Barrier.Agent)
	kick := r.runner.Run(ctx, "launchctl", []string{"kickstart", "-k", target}, kickstartTimeout)
	if kick.Ok() {
		msgs = append(msgs, "Server restarted")
	} else {
		r.logger.Debug("kickstart unavailable, killing server process",
			logging.String("reason", kick.Failure()))
		r.runner.Run(ctx, "pkill", []string{"-f", r.cfg.Barrier.ProcessPattern}, killTimeout)
		msgs = append(msgs, "Server killed (KeepAlive will restart)")
	}

	remote := r.runner.Run(ctx, "ssh", []string{
		"-o", "ConnectTimeout=5",
		"-o", "BatchMode=yes",
		r.cfg.SSHTarget(),
		"systemctl", "--user", "restart", r.cfg.Barrier.RemoteService,
	}, remoteTimeout)
	if remote.Ok() {
		msgs = append(msgs, "Client restarted")
	} else {
		r.logger.Debug("remote client restart failed", logging.String("reason", remote.Failure()))
		msgs = append(msgs, "Could not restart client")
	}

	return services.Outcome{Message: strings.Join(msgs, "; ")}
}
