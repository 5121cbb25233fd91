package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var forwardSpecRe = regexp.MustCompile(`^\d+:[^:]+:\d+$`)

// Validate ensures the configuration is usable before any checker or
// remediator is constructed. Probe timeouts are required to stay inside the
// 3-10 second band so a full status snapshot stays within the request
// latency budget.
func (c *Config) Validate() error {
	if err := c.validateRemote(); err != nil {
		return err
	}
	if err := c.validateBarrier(); err != nil {
		return err
	}
	if err := c.validateSSH(); err != nil {
		return err
	}
	if err := c.validateSMB(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRemote() error {
	if c.Remote.Host == "" {
		return errors.New("remote.host must be set")
	}
	if strings.ContainsAny(c.Remote.Host, " \t") {
		return fmt.Errorf("remote.host %q must not contain whitespace", c.Remote.Host)
	}
	if c.Remote.User == "" {
		return errors.New("remote.user must be set")
	}
	return nil
}

func (c *Config) validateBarrier() error {
	if c.Barrier.Port < 1 || c.Barrier.Port > 65535 {
		return fmt.Errorf("barrier.port %d is outside 1-65535", c.Barrier.Port)
	}
	if strings.TrimSpace(c.Barrier.ProcessPattern) == "" {
		return errors.New("barrier.process_pattern must be set")
	}
	if strings.TrimSpace(c.Barrier.RemoteService) == "" {
		return errors.New("barrier.remote_service must be set")
	}
	return validateProbeTimeout("barrier.probe_timeout", c.Barrier.ProbeTimeout)
}

func (c *Config) validateSSH() error {
	if !forwardSpecRe.MatchString(c.SSH.LocalForward) {
		return fmt.Errorf("ssh.local_forward %q must look like port:host:port", c.SSH.LocalForward)
	}
	if !forwardSpecRe.MatchString(c.SSH.RemoteForward) {
		return fmt.Errorf("ssh.remote_forward %q must look like port:host:port", c.SSH.RemoteForward)
	}
	if err := validateProbeTimeout("ssh.pgrep_timeout", c.SSH.PgrepTimeout); err != nil {
		return err
	}
	if err := validateProbeTimeout("ssh.check_timeout", c.SSH.CheckTimeout); err != nil {
		return err
	}
	if c.SSH.ConnectTimeout < 1 || c.SSH.ConnectTimeout > c.SSH.CheckTimeout {
		return fmt.Errorf("ssh.connect_timeout %d must be at least 1 and no larger than ssh.check_timeout", c.SSH.ConnectTimeout)
	}
	if c.SSH.RestartDelayMS < 0 {
		return errors.New("ssh.restart_delay_ms must not be negative")
	}
	return nil
}

func (c *Config) validateSMB() error {
	return validateProbeTimeout("smb.probe_timeout", c.SMB.ProbeTimeout)
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}

func validateProbeTimeout(field string, seconds int) error {
	if seconds < 3 || seconds > 10 {
		return fmt.Errorf("%s %d must be between 3 and 10 seconds", field, seconds)
	}
	return nil
}
