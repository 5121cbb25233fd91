package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"relink/internal/action"
	"relink/internal/config"
	"relink/internal/logging"
	"relink/internal/status"
)

// ErrAlreadyRunning indicates another daemon instance holds the lock.
var ErrAlreadyRunning = errors.New("another relink daemon instance is already running")

// Daemon ties the aggregator and coordinator to the HTTP API and enforces
// single-instance execution via a lock file.
type Daemon struct {
	cfg         *config.Config
	logger      *slog.Logger
	aggregator  *status.Aggregator
	coordinator *action.Coordinator

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	api     *apiServer
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, agg *status.Aggregator, coord *action.Coordinator, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || agg == nil || coord == nil {
		return nil, errors.New("daemon requires config, aggregator, and coordinator")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "relink.lock")
	return &Daemon{
		cfg:         cfg,
		logger:      logger,
		aggregator:  agg,
		coordinator: coord,
		lockPath:    lockPath,
		lock:        flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and brings up the API server. The daemon
// runs until ctx is canceled or Stop is called.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.api = newAPIServer(d.cfg, d.aggregator, d.coordinator, d.logger)
	if err := d.api.start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return err
	}
	d.running.Store(true)
	d.log().Info("daemon started",
		logging.String("address", d.api.addr()),
		logging.String("lock", d.lockPath))

	if d.cfg.Dashboard.OpenBrowser {
		openBrowser(d.DashboardURL(), d.log())
	}
	return nil
}

// Stop shuts down the API server and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	d.running.Store(false)
	if d.cancel != nil {
		d.cancel()
	}
	if d.api != nil {
		d.api.stop()
	}
	if err := d.lock.Unlock(); err != nil {
		d.log().Warn("release lock", logging.Error(err))
	}
	d.log().Info("daemon stopped")
}

// Running reports whether Start has completed and Stop has not.
func (d *Daemon) Running() bool { return d.running.Load() }

// Addr returns the bound API address, empty until started.
func (d *Daemon) Addr() string {
	if d.api == nil {
		return ""
	}
	return d.api.addr()
}

// DashboardURL returns the browsable root URL for the running daemon.
func (d *Daemon) DashboardURL() string {
	return "http://" + d.Addr()
}

func (d *Daemon) log() *slog.Logger {
	return logging.NewComponentLogger(d.logger, "daemon")
}
