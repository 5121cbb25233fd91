// Package status aggregates the per-service checkers into a combined
// point-in-time snapshot.
package status
