package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Remote identifies the machine the monitored services connect to.
type Remote struct {
	Host string `toml:"host"`
	User string `toml:"user"`
}

// Barrier contains configuration for the input-sharing server checks.
type Barrier struct {
	Port           int    `toml:"port"`
	Agent          string `toml:"agent"`           // launchd label for kickstart
	ProcessPattern string `toml:"process_pattern"` // pkill fallback pattern
	RemoteService  string `toml:"remote_service"`  // systemd user unit on the remote
	ProbeTimeout   int    `toml:"probe_timeout"`   // seconds, netstat scan
}

// SSH contains configuration for the persistent tunnel.
type SSH struct {
	LocalForward   string `toml:"local_forward"`
	RemoteForward  string `toml:"remote_forward"`
	PgrepTimeout   int    `toml:"pgrep_timeout"`    // seconds, process presence probe
	ConnectTimeout int    `toml:"connect_timeout"`  // seconds, ssh -o ConnectTimeout
	CheckTimeout   int    `toml:"check_timeout"`    // seconds, wall clock for reachability probe
	RestartDelayMS int    `toml:"restart_delay_ms"` // settle delay between kill and relaunch
}

// SMB contains configuration for the network share check.
type SMB struct {
	ProbeTimeout int `toml:"probe_timeout"` // seconds, mount table scan
}

// Paths contains directory and bind address configuration.
type Paths struct {
	LogDir  string `toml:"log_dir"`
	APIBind string `toml:"api_bind"`
}

// Dashboard contains configuration for the embedded web dashboard.
type Dashboard struct {
	OpenBrowser bool `toml:"open_browser"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for relink. It is constructed
// once at startup and treated as immutable; checkers and remediators receive
// it by injection and never read ambient process state.
type Config struct {
	Remote    Remote    `toml:"remote"`
	Barrier   Barrier   `toml:"barrier"`
	SSH       SSH       `toml:"ssh"`
	SMB       SMB       `toml:"smb"`
	Paths     Paths     `toml:"paths"`
	Dashboard Dashboard `toml:"dashboard"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/relink/config.toml")
}

// Load locates, parses, and validates a configuration file. A .env file in
// the working directory is honored, and RELINK_* environment variables
// override file values. The returned config has all path fields expanded.
func Load(path string) (*Config, string, bool, error) {
	// Best-effort: absence of a .env file is the common case.
	_ = godotenv.Load()

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("relink.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	logDir, err := expandPath(c.Paths.LogDir)
	if err != nil {
		return err
	}
	c.Paths.LogDir = logDir

	c.Remote.Host = strings.TrimSpace(c.Remote.Host)
	c.Remote.User = strings.TrimSpace(c.Remote.User)
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	return nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// SSHTarget returns the user@host argument for remote commands.
func (c *Config) SSHTarget() string {
	return fmt.Sprintf("%s@%s", c.Remote.User, c.Remote.Host)
}

// TunnelPattern returns the pgrep/pkill pattern matching the tunnel process.
func (c *Config) TunnelPattern() string {
	return "ssh -N.*" + c.Remote.Host
}

// TunnelArgs returns the arguments used to launch the persistent tunnel.
func (c *Config) TunnelArgs() []string {
	return []string{
		"-N",
		"-o", "ServerAliveInterval=30",
		"-o", "ServerAliveCountMax=3",
		"-L", c.SSH.LocalForward,
		"-R", c.SSH.RemoteForward,
		c.SSHTarget(),
	}
}

// ShareURL returns the smb:// location handed to the OS opener.
func (c *Config) ShareURL() string {
	return fmt.Sprintf("smb://%s@%s", c.Remote.User, c.Remote.Host)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
