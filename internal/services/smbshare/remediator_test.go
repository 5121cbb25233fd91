package smbshare

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestReconnectOpensShareURL(t *testing.T) {
	rem := NewRemediator(testConfig(), nil)

	var opened []string
	rem.detach = func(name string, args ...string) error {
		opened = append(opened, name+" "+strings.Join(args, " "))
		return nil
	}

	out := rem.Reconnect(context.Background())
	if !strings.HasPrefix(out.Message, "Mount requested for smb://") {
		t.Fatalf("message: %q", out.Message)
	}
	if len(opened) != 1 || !strings.Contains(opened[0], "smb://user@192.168.1.100") {
		t.Fatalf("opener calls: %v", opened)
	}
}

func TestReconnectReportsOpenerFailure(t *testing.T) {
	rem := NewRemediator(testConfig(), nil)
	rem.detach = func(string, ...string) error {
		return errors.New(`start xdg-open: exec: "xdg-open": executable file not found in $PATH`)
	}

	out := rem.Reconnect(context.Background())
	if !strings.HasPrefix(out.Message, "Failed: ") {
		t.Fatalf("message: %q", out.Message)
	}
}
