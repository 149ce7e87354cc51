// Package logging constructs the slog loggers used across gensubs: a compact
// console format for interactive runs, JSON for machine consumption, and an
// optional append-only file sink driven by the --log flag.
package logging
