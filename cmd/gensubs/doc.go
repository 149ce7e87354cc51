// Command gensubs drives an ffmpeg/whisper subtitle pipeline from the
// terminal. Run it with a video path to generate subtitles; subcommands
// cover configuration, tool diagnostics, and run history.
package main
