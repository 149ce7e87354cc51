// Package history records completed runs in a small SQLite database so
// `gensubs history` can show what was processed, with which options, and how
// it ended.
package history
