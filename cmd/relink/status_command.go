package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"relink/internal/logging"
	"relink/internal/preflight"
	"relink/internal/services"
	"relink/internal/status"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var showTools bool

	cmd := &cobra.Command{
		Use:          "status",
		Short:        "Check all services once and print the result",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger := logging.NewNop()
			agg := status.NewAggregator(logger, buildCheckers(cfg, logger)...)
			snap := agg.Snapshot(cmd.Context())

			if jsonOutput {
				return writeJSON(cmd, snap)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Services", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderServiceLine("Barrier", snap.Barrier, colorize))
			fmt.Fprintln(out, renderServiceLine("SSH Tunnel", snap.SSH, colorize))
			fmt.Fprintln(out, renderServiceLine("SMB Share", snap.SMB, colorize))

			if showTools {
				fmt.Fprintln(out)
				for _, line := range renderSectionHeader("Tools", colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, renderToolTable(preflight.CheckTools(cfg)))
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "Checked %s against %s\n",
				time.Now().Format("15:04:05"), cfg.Remote.Host)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the status snapshot as JSON")
	cmd.Flags().BoolVar(&showTools, "tools", false, "Also report availability of required command line tools")
	return cmd
}

func renderServiceLine(label string, st services.Status, colorize bool) string {
	return renderStatusLine(label, serviceStatusKind(st.State), st.Detail, colorize)
}

func serviceStatusKind(state services.State) statusKind {
	switch state {
	case services.StateConnected:
		return statusOK
	case services.StateWarning:
		return statusWarn
	case services.StateDown:
		return statusError
	default:
		return statusInfo
	}
}

func renderToolTable(results []preflight.Result) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		detail := r.Detail
		if detail == "" {
			detail = r.Description
		}
		rows = append(rows, []string{r.Command, toolAvailability(r), detail})
	}
	return renderTable(
		[]string{"Tool", "Status", "Notes"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	)
}

func toolAvailability(r preflight.Result) string {
	switch {
	case r.Available:
		return "available"
	case r.Optional:
		return "missing (optional)"
	default:
		return "MISSING"
	}
}
