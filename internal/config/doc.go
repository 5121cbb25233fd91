// Package config loads, validates, and exposes the immutable relink
// configuration. Values come from a TOML file layered with RELINK_*
// environment variables; the resulting Config is injected into every
// checker and remediator constructor and never mutated afterwards.
package config
