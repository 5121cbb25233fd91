// Package action coordinates remediation: it owns the per-service busy
// flags and guarantees a service's remediator never runs concurrently with
// itself.
package action
