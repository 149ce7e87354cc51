// Package language maps language codes reported by, or supplied to, the
// speech recognizer onto human-readable display names for summaries.
package language
