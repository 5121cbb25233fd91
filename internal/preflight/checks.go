package preflight

import (
	"fmt"
	"os/exec"

	"relink/internal/config"
	"relink/internal/probe"
)

// Result describes one external tool availability check.
type Result struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Severity maps availability onto the status vocabulary used by CLI output:
// ok, warn (missing but optional), error (missing and required).
func (r Result) Severity() string {
	if r.Available {
		return "ok"
	}
	if r.Optional {
		return "warn"
	}
	return "error"
}

type toolSpec struct {
	name        string
	command     string
	description string
	optional    bool
}

// CheckTools resolves availability of every external command the checkers
// and remediators delegate to. launchctl is optional: the barrier
// remediator has a pkill fallback when it is absent.
func CheckTools(cfg *config.Config) []Result {
	specs := []toolSpec{
		{name: "netstat", command: "netstat", description: fmt.Sprintf("Connection scan for port %d", cfg.Barrier.Port)},
		{name: "ssh", command: "ssh", description: fmt.Sprintf("Reachability probe, tunnel, and restarts on %s", cfg.SSHTarget())},
		{name: "pgrep", command: "pgrep", description: "Tunnel process detection"},
		{name: "pkill", command: "pkill", description: "Process termination for restarts"},
		{name: "mount", command: "mount", description: fmt.Sprintf("Mount table scan for shares from %s", cfg.Remote.Host)},
		{name: "launchctl", command: "launchctl", description: fmt.Sprintf("Restart of the %s agent", cfg.Barrier.Agent), optional: true},
		{name: "opener", command: probe.OpenerCommand(), description: "Share and dashboard opening", optional: true},
	}

	results := make([]Result, 0, len(specs))
	for _, spec := range specs {
		results = append(results, lookup(spec))
	}
	return results
}

func lookup(spec toolSpec) Result {
	result := Result{
		Name:        spec.name,
		Command:     spec.command,
		Description: spec.description,
		Optional:    spec.optional,
	}
	path, err := exec.LookPath(spec.command)
	if err != nil {
		result.Detail = "not found in PATH"
		return result
	}
	result.Available = true
	result.Detail = path
	return result
}
