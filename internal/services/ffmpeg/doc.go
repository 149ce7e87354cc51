// Package ffmpeg wraps the external transcoder used to stage recognizer
// input: the full audio track as mono 16 kHz PCM WAV.
package ffmpeg
