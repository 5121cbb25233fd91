package main

import (
	"encoding/json"
	"testing"

	"relink/internal/services"
)

func TestStatusCommandWithStubbedProbes(t *testing.T) {
	env := setupCLITestEnv(t)

	// The stub binaries exit zero with no output: netstat reports no
	// barrier connections, pgrep finds no tunnel process but ssh itself
	// succeeds, and mount lists no share.
	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "== Services ==")
	requireContains(t, out, "Server not running")
	requireContains(t, out, "SSH OK, tunnel down")
	requireContains(t, out, "No mount found")
	requireContains(t, out, env.cfg.Remote.Host)
}

func TestStatusCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("status --json: %v", err)
	}

	var snap struct {
		Barrier services.Status `json:"barrier"`
		SSH     services.Status `json:"ssh"`
		SMB     services.Status `json:"smb"`
	}
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("decode snapshot: %v\noutput: %s", err, out)
	}
	if snap.Barrier.State != services.StateDown {
		t.Fatalf("expected barrier down, got %+v", snap.Barrier)
	}
	if snap.SSH.State != services.StateWarning {
		t.Fatalf("expected ssh warning, got %+v", snap.SSH)
	}
	if snap.SMB.State != services.StateDown {
		t.Fatalf("expected smb down, got %+v", snap.SMB)
	}
}

func TestStatusCommandToolsSection(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status", "--tools"}, env.configPath)
	if err != nil {
		t.Fatalf("status --tools: %v", err)
	}
	requireContains(t, out, "== Tools ==")
	requireContains(t, out, "netstat")
	requireContains(t, out, "available")
}

func TestReconnectRejectsUnknownService(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"reconnect", "vpn"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown service")
	}
	requireContains(t, err.Error(), "unknown service")
}

func TestRootHelpListsCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--help"}, env.configPath)
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, name := range []string{"daemon", "status", "reconnect", "config"} {
		requireContains(t, out, name)
	}
}
