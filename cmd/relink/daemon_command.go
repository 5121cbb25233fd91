package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"relink/internal/action"
	"relink/internal/daemon"
	"relink/internal/logging"
	"relink/internal/status"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	var noBrowser bool

	cmd := &cobra.Command{
		Use:          "daemon",
		Short:        "Run the relink daemon with the HTTP API and dashboard",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if noBrowser {
				cfg.Dashboard.OpenBrowser = false
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			agg := status.NewAggregator(logger, buildCheckers(cfg, logger)...)
			coord := action.NewCoordinator(logger, buildRemediators(cfg, logger)...)

			d, err := daemon.New(cfg, agg, coord, logger)
			if err != nil {
				return fmt.Errorf("create daemon: %w", err)
			}
			if err := d.Start(signalCtx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "relink daemon listening on %s\n", d.Addr())

			<-signalCtx.Done()
			logger.Info("relink daemon shutting down")
			d.Stop()
			return nil
		},
	}

	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open the dashboard in a browser on startup")
	return cmd
}
