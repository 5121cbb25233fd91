// Package logging builds the slog loggers used across relink and provides
// shared attribute helpers. The console format emits single-line
// "TIME LEVEL component: message k=v" records; the JSON format is intended
// for file output and machine consumption.
package logging
