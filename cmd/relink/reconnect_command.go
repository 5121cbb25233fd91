package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"relink/internal/action"
	"relink/internal/logging"
	"relink/internal/services"
)

func newReconnectCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "reconnect [barrier|ssh|smb|all]",
		Short:        "Trigger remediation for one service or all of them",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			target := "all"
			if len(args) == 1 {
				target = args[0]
			}

			logger := logging.NewNop()
			coord := action.NewCoordinator(logger, buildRemediators(cfg, logger)...)

			var outcome services.Outcome
			if target == "all" {
				outcome = coord.ReconnectAll(cmd.Context())
			} else {
				id, ok := services.ParseIdentity(target)
				if !ok {
					return fmt.Errorf("unknown service %q (expected barrier, ssh, smb, or all)", target)
				}
				outcome = coord.Reconnect(cmd.Context(), id)
			}

			fmt.Fprintln(cmd.OutOrStdout(), outcome.Message)
			return nil
		},
	}
	return cmd
}
