package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gensubs/internal/config"
	"gensubs/internal/prompt"
	"gensubs/internal/runspec"
	"gensubs/internal/services"
)

// Flags carries option values pre-seeded on the command line. A supplied
// value takes precedence over its prompt, which is then never shown.
type Flags struct {
	Model string
	// LanguageSet distinguishes --language "" (explicit auto-detect) from
	// an absent flag.
	Language    string
	LanguageSet bool
	// TranslateToEnglish switches the task mode without prompting.
	TranslateToEnglish bool
	// NoClean keeps the intermediate WAV without prompting.
	NoClean bool
	// OutputDir overrides the output folder prompt.
	OutputDir string
}

// Resolve produces the immutable run configuration from command-line values,
// interactive prompts, and config-file defaults, in that order of
// precedence. Its only filesystem mutation is creating the output directory
// (parents included); aborting after Resolve requires no cleanup.
func Resolve(cfg *config.Config, videoArg string, flags Flags, prompter *prompt.Prompter, workDir string) (runspec.Config, error) {
	if strings.TrimSpace(videoArg) == "" {
		return runspec.Config{}, services.Wrap(services.ErrValidation, "resolving", "input", "no input video supplied", nil)
	}

	videoPath, err := filepath.Abs(videoArg)
	if err != nil {
		return runspec.Config{}, services.Wrap(services.ErrValidation, "resolving", "input", "resolve video path", err)
	}
	if _, err := os.Stat(videoPath); err != nil {
		return runspec.Config{}, services.Wrap(services.ErrNotFound, "resolving", "input", fmt.Sprintf("video not found: %s", videoArg), err)
	}

	baseName := runspec.BaseNameOf(videoPath)
	spec := runspec.Config{
		InputVideoPath: videoPath,
		BaseName:       baseName,
	}

	spec.OutputDirectory, err = resolveOutputDir(flags, prompter, workDir, baseName)
	if err != nil {
		return runspec.Config{}, err
	}

	if flags.LanguageSet {
		spec.SourceLanguage = strings.TrimSpace(flags.Language)
	} else {
		// Stored verbatim: the recognizer is authoritative and rejects
		// codes it does not know.
		spec.SourceLanguage = prompter.Text("Source audio language (e.g. en, fr, es; empty for auto-detect)", "")
	}

	spec.TaskMode = runspec.TaskTranscribe
	if flags.TranslateToEnglish || prompter.YesNo("Translate to English?", false) {
		spec.TaskMode = runspec.TaskTranslate
	}

	spec.ModelSize, err = resolveModel(cfg, flags, prompter)
	if err != nil {
		return runspec.Config{}, err
	}

	if flags.NoClean {
		spec.CleanIntermediateAudio = false
	} else if prompter.Interactive() {
		spec.CleanIntermediateAudio = prompter.YesNo("Remove intermediate .wav after the run?", false)
	} else {
		spec.CleanIntermediateAudio = cfg.Defaults.CleanWAV
	}

	if prompter.Interactive() {
		spec.OverwriteExisting = prompter.YesNo("Overwrite an existing subtitle?", false)
		spec.SkipIfOutputExists = prompter.YesNo("Skip if a subtitle already exists?", false)
	} else {
		spec.OverwriteExisting = cfg.Defaults.Overwrite
		spec.SkipIfOutputExists = cfg.Defaults.SkipIfExists
	}

	if err := os.MkdirAll(spec.OutputDirectory, 0o755); err != nil {
		return runspec.Config{}, services.Wrap(services.ErrConfiguration, "resolving", "output", fmt.Sprintf("create output directory %s", spec.OutputDirectory), err)
	}

	if err := spec.Validate(); err != nil {
		return runspec.Config{}, err
	}
	return spec, nil
}

func resolveOutputDir(flags Flags, prompter *prompt.Prompter, workDir, baseName string) (string, error) {
	name := strings.TrimSpace(flags.OutputDir)
	if name == "" {
		name = prompter.Text("Output folder", baseName)
		if name == "" {
			name = baseName
		}
	}
	expanded, err := config.ExpandPath(name)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "resolving", "output", "expand output directory", err)
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, "~") {
		return expanded, nil
	}
	// Relative names resolve against the invocation directory.
	return filepath.Join(workDir, name), nil
}

func resolveModel(cfg *config.Config, flags Flags, prompter *prompt.Prompter) (string, error) {
	if supplied := strings.ToLower(strings.TrimSpace(flags.Model)); supplied != "" {
		if !slices.Contains(config.ModelSizes, supplied) {
			return "", services.Wrap(services.ErrValidation, "resolving", "model", fmt.Sprintf("unknown model size %q (choose from %s)", supplied, strings.Join(config.ModelSizes, ", ")), nil)
		}
		return supplied, nil
	}
	return prompter.Choice("Recognizer model size", config.ModelSizes, cfg.Defaults.Model), nil
}
