package smbshare

import (
	"context"
	"log/slog"

	"relink/internal/config"
	"relink/internal/logging"
	"relink/internal/probe"
	"relink/internal/services"
)

// Remediator hands the share location to the OS's default opener, which
// triggers the platform mount workflow. Fire-and-forget: the opener is
// detached and never tracked.
type Remediator struct {
	cfg    *config.Config
	logger *slog.Logger
	opener string
	detach func(name string, args ...string) error
}

// NewRemediator constructs a share remediator.
func NewRemediator(cfg *config.Config, logger *slog.Logger) *Remediator {
	return &Remediator{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "smb-remediator"),
		opener: probe.OpenerCommand(),
		detach: probe.Detach,
	}
}

// Identity implements services.Remediator.
func (r *Remediator) Identity() services.Identity { return services.SMB }

// Reconnect implements services.Remediator.
func (r *Remediator) Reconnect(context.Context) services.Outcome {
	url := r.cfg.ShareURL()
	if err := r.detach(r.opener, url); err != nil {
		r.logger.Warn("share open failed", logging.Error(err))
		return services.Outcome{Message: "Failed: " + services.ClipDetail(err.Error())}
	}
	return services.Outcome{Message: "Mount requested for " + url}
}
