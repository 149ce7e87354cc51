// Package resolve turns command-line arguments, interactive answers, and
// config-file defaults into the immutable configuration a run executes
// against. Values supplied on the command line win and are never re-asked.
package resolve
