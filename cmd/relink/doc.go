// Package main hosts the relink CLI entrypoint and command graph.
//
// The Cobra-based command tree runs the daemon, performs one-shot status
// checks, triggers reconnects, and scaffolds configuration. It centralizes
// configuration resolution and service construction so subcommands can focus
// on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
