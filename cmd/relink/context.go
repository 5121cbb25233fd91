package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"relink/internal/config"
	"relink/internal/probe"
	"relink/internal/services"
	"relink/internal/services/barrier"
	"relink/internal/services/smbshare"
	"relink/internal/services/sshtunnel"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// buildCheckers constructs one checker per monitored service, sharing a
// single probe runner.
func buildCheckers(cfg *config.Config, logger *slog.Logger) []services.Checker {
	runner := probe.NewRunner(logger)
	return []services.Checker{
		barrier.NewChecker(cfg, runner, logger),
		sshtunnel.NewChecker(cfg, runner, logger),
		smbshare.NewChecker(cfg, runner, logger),
	}
}

// buildRemediators constructs one remediator per monitored service.
func buildRemediators(cfg *config.Config, logger *slog.Logger) []services.Remediator {
	runner := probe.NewRunner(logger)
	return []services.Remediator{
		barrier.NewRemediator(cfg, runner, logger),
		sshtunnel.NewRemediator(cfg, runner, logger),
		smbshare.NewRemediator(cfg, logger),
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
