// Package pipeline owns the extract -> recognize -> collect -> clean ->
// place state machine for one run. Extraction failure is fatal; everything
// after it degrades softly, so a re-run is always safe and partial output is
// never thrown away.
package pipeline
