package probe

import (
	"fmt"
	"os/exec"
	"runtime"
	"syscall"
)

// Detach launches a command in its own session and releases the process
// handle. Ownership transfers to the OS: the child outlives this process and
// nothing here tracks its lifetime. Used for the tunnel relaunch and the
// share/browser openers.
func Detach(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	return cmd.Process.Release()
}

// OpenerCommand returns the platform's default URL/location opener.
func OpenerCommand() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}
