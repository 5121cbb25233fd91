// Package daemon hosts the long-running relink process: the loopback HTTP
// API, the embedded dashboard page, and the lock file that keeps a machine
// to a single instance. It wires the status aggregator and action
// coordinator to their HTTP routes but contains no service logic itself.
package daemon
