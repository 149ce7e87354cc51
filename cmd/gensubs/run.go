package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gensubs/internal/config"
	"gensubs/internal/deps"
	"gensubs/internal/history"
	"gensubs/internal/language"
	"gensubs/internal/logging"
	"gensubs/internal/pipeline"
	"gensubs/internal/prompt"
	"gensubs/internal/resolve"
	"gensubs/internal/runspec"
	"gensubs/internal/services"
	"gensubs/internal/services/ffmpeg"
	"gensubs/internal/services/whisper"
)

type runFlags struct {
	model     string
	language  string
	translate bool
	noClean   bool
	outputDir string
	assumeYes bool
	logPath   string
}

func runGenerate(cmd *cobra.Command, cmdCtx *commandContext, videoArg string, flags runFlags) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	interactive := stdinIsTerminal() && stdoutIsTerminal()
	printBanner(out, stdoutIsTerminal())

	// Tool availability is checked before any prompt so a missing binary
	// never wastes an interview.
	transcoderStatus := deps.CheckTranscoder(cfg.Tools.Transcoder)
	recognizerStatuses := deps.CheckBinaries([]deps.Requirement{{
		Name:        "Recognizer",
		Command:     cfg.Tools.Recognizer,
		Description: "Produces subtitle files from the audio track",
	}})
	statuses := append([]deps.Status{transcoderStatus}, recognizerStatuses...)
	if err := deps.FirstMissing(statuses); err != nil {
		return err
	}
	recognizerStatus := recognizerStatuses[0]

	var extraLogs []string
	if path := strings.TrimSpace(flags.logPath); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
		extraLogs = append(extraLogs, expanded)
	}
	logger, err := logging.NewFromConfig(cfg, extraLogs...)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	prompter := prompt.New(cmd.InOrStdin(), out, interactive)
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}

	spec, err := resolve.Resolve(cfg, videoArg, resolve.Flags{
		Model:              flags.model,
		Language:           flags.language,
		LanguageSet:        cmd.Flags().Changed("language"),
		TranslateToEnglish: flags.translate,
		NoClean:            flags.noClean,
		OutputDir:          flags.outputDir,
	}, prompter, workDir)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, renderRunPlan(spec, transcoderStatus.Command, recognizerStatus.Command))
	if !flags.assumeYes && !prompter.YesNo("Start the run?", true) {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}
	fmt.Fprintln(out)

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	transcoder := ffmpeg.NewCLI(ffmpeg.WithBinary(transcoderStatus.Command))
	recognizer := whisper.NewCLI(whisper.WithBinary(recognizerStatus.Command))

	pl := pipeline.New(spec, transcoder, recognizer, logger)
	spinner := newStageSpinner(out, interactive)
	pl.OnStageChange(spinner.setStage)

	result, runErr := pl.Run(signalCtx)
	spinner.stop()

	fmt.Fprintln(out)
	fmt.Fprintln(out, renderRunSummary(result))
	for _, soft := range result.SoftErrors {
		fmt.Fprintf(out, "warning: %s\n", services.Message(soft))
	}

	if cfg.History.Enabled {
		if err := appendHistory(cmd, cfg, result); err != nil {
			logger.Warn("history append failed", logging.Error(err))
		}
	}

	return runErr
}

func renderRunPlan(spec runspec.Config, transcoderPath, recognizerPath string) string {
	return renderKV([][2]string{
		{"Input video", spec.InputVideoPath},
		{"Output folder", spec.OutputDirectory},
		{"Language", language.DisplayName(spec.SourceLanguage)},
		{"Task", string(spec.TaskMode)},
		{"Model", spec.ModelSize},
		{"Remove WAV", yesNo(spec.CleanIntermediateAudio)},
		{"Overwrite subtitle", yesNo(spec.OverwriteExisting)},
		{"Skip if subtitle exists", yesNo(spec.SkipIfOutputExists)},
		{"Transcoder", transcoderPath},
		{"Recognizer", recognizerPath},
	})
}

func renderRunSummary(result *pipeline.Result) string {
	pairs := [][2]string{
		{"Outcome", result.Outcome()},
		{"Elapsed", result.Elapsed.Round(time.Millisecond).String()},
		{"Recognition", string(result.Recognition)},
	}
	if result.FailedStage != "" {
		pairs = append(pairs, [2]string{"Failed stage", string(result.FailedStage)})
	}
	if result.SubtitlePresent {
		pairs = append(pairs, [2]string{"Subtitle", describeFile(result.Spec.SubtitlePath())})
	} else {
		pairs = append(pairs, [2]string{"Subtitle", "not produced"})
	}
	if result.DetectedLanguage != "" {
		pairs = append(pairs, [2]string{"Detected language", language.DisplayName(result.DetectedLanguage)})
	}
	if len(result.Artifacts) > 0 {
		pairs = append(pairs, [2]string{"Artifacts", strings.Join(artifactNames(result.Artifacts), ", ")})
	}
	if result.FinalVideoPath != "" {
		pairs = append(pairs, [2]string{"Video", result.FinalVideoPath})
	}
	return renderKV(pairs)
}

func describeFile(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return path
	}
	return fmt.Sprintf("%s (%s)", path, humanize.Bytes(uint64(info.Size())))
}

func artifactNames(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	return names
}

func appendHistory(cmd *cobra.Command, cfg *config.Config, result *pipeline.Result) error {
	store, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		return err
	}
	defer store.Close()

	subtitlePath := ""
	if result.SubtitlePresent {
		subtitlePath = result.Spec.SubtitlePath()
	}
	return store.Append(cmd.Context(), history.Record{
		ID:               result.RunID,
		StartedAt:        result.StartedAt,
		VideoPath:        result.Spec.InputVideoPath,
		OutputDir:        result.Spec.OutputDirectory,
		Model:            result.Spec.ModelSize,
		Task:             string(result.Spec.TaskMode),
		Language:         result.Spec.SourceLanguage,
		DetectedLanguage: result.DetectedLanguage,
		Outcome:          result.Outcome(),
		SubtitlePath:     subtitlePath,
		Duration:         result.Elapsed,
	})
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
