// Package whisper wraps the external speech recognizer: argument
// construction for model, task, and language selection, and probing of the
// sidecar files it writes next to its working directory.
package whisper
