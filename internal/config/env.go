package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// applyEnvOverrides layers RELINK_* environment variables over file values.
// A .env file loaded earlier in Load participates through the process
// environment like any other variable.
func (c *Config) applyEnvOverrides() error {
	envString("RELINK_REMOTE_HOST", &c.Remote.Host)
	envString("RELINK_REMOTE_USER", &c.Remote.User)
	envString("RELINK_BARRIER_AGENT", &c.Barrier.Agent)
	envString("RELINK_BARRIER_PROCESS_PATTERN", &c.Barrier.ProcessPattern)
	envString("RELINK_REMOTE_KM_SERVICE", &c.Barrier.RemoteService)
	envString("RELINK_SSH_LOCAL_FWD", &c.SSH.LocalForward)
	envString("RELINK_SSH_REMOTE_FWD", &c.SSH.RemoteForward)
	envString("RELINK_LOG_DIR", &c.Paths.LogDir)
	envString("RELINK_API_BIND", &c.Paths.APIBind)
	envString("RELINK_LOG_FORMAT", &c.Logging.Format)
	envString("RELINK_LOG_LEVEL", &c.Logging.Level)

	if err := envInt("RELINK_BARRIER_PORT", &c.Barrier.Port); err != nil {
		return err
	}
	if err := envBool("RELINK_OPEN_BROWSER", &c.Dashboard.OpenBrowser); err != nil {
		return err
	}
	return nil
}

func envString(key string, dst *string) {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		*dst = strings.TrimSpace(value)
	}
}

func envInt(key string, dst *int) error {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = parsed
	return nil
}

func envBool(key string, dst *bool) error {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = parsed
	return nil
}
