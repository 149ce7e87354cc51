package runspec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gensubs/internal/services"
)

// Task selects the recognizer operation.
type Task string

const (
	// TaskTranscribe produces subtitles in the source language.
	TaskTranscribe Task = "transcribe"
	// TaskTranslate produces English subtitles regardless of source language.
	TaskTranslate Task = "translate"
)

// Config is the fully resolved, immutable per-run configuration. It is built
// once by the resolve package and passed by value to every downstream
// component; nothing reads ambient process state after resolution.
type Config struct {
	InputVideoPath  string
	BaseName        string
	OutputDirectory string

	// SourceLanguage is the code forwarded verbatim to the recognizer;
	// empty means auto-detect (no language argument at all).
	SourceLanguage string
	TaskMode       Task
	ModelSize      string

	CleanIntermediateAudio bool
	OverwriteExisting      bool
	SkipIfOutputExists     bool
}

// BaseNameOf derives the base name from a video path: the file name without
// directory or extension.
func BaseNameOf(videoPath string) string {
	base := filepath.Base(videoPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IntermediateAudioPath is the deterministic staging location of the
// extracted WAV.
func (c Config) IntermediateAudioPath() string {
	return filepath.Join(c.OutputDirectory, c.BaseName+".wav")
}

// SubtitlePath is the final destination of the primary subtitle artifact.
func (c Config) SubtitlePath() string {
	return filepath.Join(c.OutputDirectory, c.BaseName+".srt")
}

// RecognizerWorkDir is the directory the recognizer runs in and writes its
// sidecar files to. Keeping it separate from OutputDirectory makes
// collection an explicit move between two known directories.
func (c Config) RecognizerWorkDir() string {
	return filepath.Join(c.OutputDirectory, ".work")
}

// DetectedLanguageProbePath is where the recognizer's JSON sidecar lands
// after collection.
func (c Config) DetectedLanguageProbePath() string {
	return filepath.Join(c.OutputDirectory, c.BaseName+".json")
}

// Validate checks the invariants that must hold at resolution time.
func (c Config) Validate() error {
	if strings.TrimSpace(c.InputVideoPath) == "" {
		return services.Wrap(services.ErrValidation, "resolving", "input", "input video path required", nil)
	}
	info, err := os.Stat(c.InputVideoPath)
	if err != nil {
		return services.Wrap(services.ErrNotFound, "resolving", "input", fmt.Sprintf("video not found: %s", c.InputVideoPath), err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrValidation, "resolving", "input", fmt.Sprintf("%s is a directory", c.InputVideoPath), nil)
	}
	if strings.TrimSpace(c.BaseName) == "" {
		return services.Wrap(services.ErrValidation, "resolving", "input", "base name required", nil)
	}
	if strings.TrimSpace(c.OutputDirectory) == "" {
		return services.Wrap(services.ErrValidation, "resolving", "output", "output directory required", nil)
	}
	switch c.TaskMode {
	case TaskTranscribe, TaskTranslate:
	default:
		return services.Wrap(services.ErrValidation, "resolving", "task", fmt.Sprintf("unknown task mode %q", c.TaskMode), nil)
	}
	if strings.TrimSpace(c.ModelSize) == "" {
		return services.Wrap(services.ErrValidation, "resolving", "model", "model size required", nil)
	}
	return nil
}
