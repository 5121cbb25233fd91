// Package probe runs external diagnostic commands with a hard wall-clock
// timeout. Every outcome is a value: command-not-found, non-zero exit, and
// timeout are all encoded in the Result so callers decide severity. There is
// no retry policy at this layer.
package probe
