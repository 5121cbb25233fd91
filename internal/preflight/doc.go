// Package preflight reports availability of the external tools the daemon
// delegates to. A missing required tool does not stop the daemon; the
// affected checks simply report down at poll time.
package preflight
