package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"gensubs/internal/logging"
	"gensubs/internal/placement"
	"gensubs/internal/runspec"
	"gensubs/internal/services"
	"gensubs/internal/services/ffmpeg"
	"gensubs/internal/services/whisper"
)

// Stage names the orchestrator states in execution order.
type Stage string

const (
	StageInit        Stage = "init"
	StageExtracting  Stage = "extracting"
	StageRecognizing Stage = "recognizing"
	StageCollecting  Stage = "collecting"
	StageCleaning    Stage = "cleaning"
	StagePlacing     Stage = "placing"
	StageDone        Stage = "done"
)

// Pipeline sequences extraction, recognition, collection, cleanup, and video
// placement for a single resolved run. Stages run strictly sequentially;
// each external invocation blocks until the subprocess exits.
type Pipeline struct {
	spec       runspec.Config
	transcoder ffmpeg.Client
	recognizer whisper.Client
	logger     *slog.Logger
	onStage    func(Stage)
}

// New constructs a pipeline for the given run.
func New(spec runspec.Config, transcoder ffmpeg.Client, recognizer whisper.Client, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		spec:       spec,
		transcoder: transcoder,
		recognizer: recognizer,
		logger:     logger.With(logging.String(logging.FieldComponent, "pipeline")),
	}
}

// OnStageChange registers a hook invoked at each state transition, used by
// the CLI to drive its spinner.
func (p *Pipeline) OnStageChange(fn func(Stage)) {
	p.onStage = fn
}

// Run drives the state machine to completion. The returned error is non-nil
// only on the fatal path (extraction failure); every later failure is soft
// and lands in Result.SoftErrors instead.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Spec:      p.spec,
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	ctx = logging.WithRunID(ctx, result.RunID)

	release := p.acquireAdvisoryLock(ctx)
	defer release()

	if err := p.extract(ctx, result); err != nil {
		result.FailedStage = StageExtracting
		result.Elapsed = time.Since(result.StartedAt)
		return result, err
	}
	p.recognize(ctx, result)
	p.collect(ctx, result)
	p.clean(ctx, result)
	p.place(ctx, result)

	p.enterStage(ctx, StageDone)
	p.finalize(result)
	return result, nil
}

func (p *Pipeline) extract(ctx context.Context, result *Result) error {
	ctx = p.enterStage(ctx, StageExtracting)
	logger := logging.WithContext(ctx, p.logger)

	wavPath := p.spec.IntermediateAudioPath()
	logger.Info("extracting audio",
		logging.String("source_file", p.spec.InputVideoPath),
		logging.String("wav_file", wavPath),
	)
	if err := p.transcoder.ExtractAudio(ctx, p.spec.InputVideoPath, wavPath); err != nil {
		logger.Error("audio extraction failed",
			logging.String(logging.FieldEventType, "stage_failure"),
			logging.Error(err),
		)
		return services.Wrap(services.ErrExternalTool, string(StageExtracting), "extract audio", "transcoder exited with an error", err)
	}
	result.IntermediateAudioPath = wavPath
	logger.Info("audio extracted", logging.String(logging.FieldEventType, "stage_complete"))
	return nil
}

func (p *Pipeline) recognize(ctx context.Context, result *Result) {
	ctx = p.enterStage(ctx, StageRecognizing)
	logger := logging.WithContext(ctx, p.logger)

	// Existing-output policy gate: an existing subtitle bypasses recognition
	// under either the skip or the keep-existing policy.
	if _, err := os.Stat(p.spec.SubtitlePath()); err == nil {
		switch {
		case p.spec.SkipIfOutputExists:
			result.Recognition = RecognitionSkipped
			logger.Info("subtitle already present, skipping recognition",
				logging.String("subtitle_file", p.spec.SubtitlePath()),
			)
			return
		case !p.spec.OverwriteExisting:
			result.Recognition = RecognitionKeptExisting
			logger.Info("subtitle already present and overwrite disabled, keeping existing",
				logging.String("subtitle_file", p.spec.SubtitlePath()),
			)
			return
		}
	}

	req := whisper.Request{
		AudioPath: result.IntermediateAudioPath,
		Model:     p.spec.ModelSize,
		Language:  p.spec.SourceLanguage,
		Task:      string(p.spec.TaskMode),
		WorkDir:   p.spec.RecognizerWorkDir(),
	}
	logger.Info("recognition started",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.String("model", req.Model),
		logging.String("task", req.Task),
		logging.String("language", orAuto(req.Language)),
	)
	if err := p.recognizer.Transcribe(ctx, req); err != nil {
		// Non-fatal: partial sidecars may still exist and are collected below.
		result.Recognition = RecognitionFailed
		result.addSoft(fmt.Errorf("recognition: %w", err))
		logger.Warn("recognizer exited with an error, continuing with partial output", logging.Error(err))
		return
	}
	result.Recognition = RecognitionRan
	logger.Info("recognition finished", logging.String(logging.FieldEventType, "stage_complete"))
}

func (p *Pipeline) collect(ctx context.Context, result *Result) {
	ctx = p.enterStage(ctx, StageCollecting)
	logger := logging.WithContext(ctx, p.logger)

	// Fresh recognizer output (complete or partial) replaces placed
	// artifacts; a kept or skipped subtitle must survive stale work-dir
	// leftovers from an interrupted run.
	replace := result.Recognition == RecognitionRan || result.Recognition == RecognitionFailed
	moved, softErrors := placement.CollectSidecars(p.spec.RecognizerWorkDir(), p.spec.OutputDirectory, p.spec.BaseName, replace)
	result.Artifacts = moved
	for _, err := range softErrors {
		result.addSoft(err)
		logger.Warn("artifact move failed", logging.Error(err))
	}
	logger.Info("artifacts collected", logging.Int("count", len(moved)))

	// Best-effort: the work dir disappears once drained.
	_ = os.Remove(p.spec.RecognizerWorkDir())
}

func (p *Pipeline) clean(ctx context.Context, result *Result) {
	ctx = p.enterStage(ctx, StageCleaning)
	logger := logging.WithContext(ctx, p.logger)

	if !p.spec.CleanIntermediateAudio {
		logger.Debug("keeping intermediate audio", logging.String("wav_file", p.spec.IntermediateAudioPath()))
		return
	}
	if err := os.Remove(p.spec.IntermediateAudioPath()); err != nil && !os.IsNotExist(err) {
		result.addSoft(fmt.Errorf("remove intermediate audio: %w", err))
		logger.Warn("failed to remove intermediate audio", logging.Error(err))
		return
	}
	logger.Info("intermediate audio removed")
}

func (p *Pipeline) place(ctx context.Context, result *Result) {
	ctx = p.enterStage(ctx, StagePlacing)
	logger := logging.WithContext(ctx, p.logger)

	finalPath, err := placement.PlaceVideo(p.spec.OutputDirectory, p.spec.InputVideoPath)
	if err != nil {
		// Subtitles already written remain valid; the video just stays put.
		result.FinalVideoPath = p.spec.InputVideoPath
		result.addSoft(fmt.Errorf("relocate video: %w", err))
		logger.Warn("video relocation failed, source left in place", logging.Error(err))
		return
	}
	result.FinalVideoPath = finalPath
	logger.Info("video relocated", logging.String("video_file", finalPath))
}

func (p *Pipeline) finalize(result *Result) {
	result.Elapsed = time.Since(result.StartedAt)
	if _, err := os.Stat(p.spec.SubtitlePath()); err == nil {
		result.SubtitlePresent = true
	}
	if lang, err := whisper.DetectedLanguage(p.spec.DetectedLanguageProbePath()); err == nil {
		result.DetectedLanguage = lang
	}
}

func (p *Pipeline) enterStage(ctx context.Context, stage Stage) context.Context {
	if p.onStage != nil {
		p.onStage(stage)
	}
	return logging.WithStage(ctx, string(stage))
}

func orAuto(language string) string {
	if language == "" {
		return "auto"
	}
	return language
}
