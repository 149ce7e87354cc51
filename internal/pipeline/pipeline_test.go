package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gensubs/internal/runspec"
	"gensubs/internal/services/whisper"
)

type fakeTranscoder struct {
	err   error
	calls int
}

func (f *fakeTranscoder) ExtractAudio(_ context.Context, _, dest string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dest, []byte("RIFFwav"), 0o644)
}

type fakeRecognizer struct {
	err      error
	calls    int
	lastReq  whisper.Request
	sidecars map[string]string // extension -> content written into WorkDir
}

func (f *fakeRecognizer) Transcribe(_ context.Context, req whisper.Request) error {
	f.calls++
	f.lastReq = req
	if err := os.MkdirAll(req.WorkDir, 0o755); err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(req.AudioPath), filepath.Ext(req.AudioPath))
	for ext, content := range f.sidecars {
		if err := os.WriteFile(filepath.Join(req.WorkDir, base+ext), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return f.err
}

func newTestSpec(t *testing.T) runspec.Config {
	t.Helper()
	dir := t.TempDir()
	video := filepath.Join(dir, "movie.mp4")
	if err := os.WriteFile(video, []byte("video-bytes"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}
	outDir := filepath.Join(dir, "movie")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatalf("mkdir output: %v", err)
	}
	return runspec.Config{
		InputVideoPath:         video,
		BaseName:               "movie",
		OutputDirectory:        outDir,
		TaskMode:               runspec.TaskTranscribe,
		ModelSize:              "small",
		CleanIntermediateAudio: true,
	}
}

func TestRunSuccess(t *testing.T) {
	spec := newTestSpec(t)
	transcoder := &fakeTranscoder{}
	recognizer := &fakeRecognizer{sidecars: map[string]string{
		".srt":  "1\n00:00 --> 00:01\nhello\n",
		".json": `{"language":"en"}`,
	}}

	result, err := New(spec, transcoder, recognizer, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Recognition != RecognitionRan {
		t.Fatalf("unexpected recognition status %q", result.Recognition)
	}
	if !result.SubtitlePresent {
		t.Fatal("expected subtitle to be present")
	}
	if len(result.Artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %v", result.Artifacts)
	}
	if result.DetectedLanguage != "en" {
		t.Fatalf("expected detected language en, got %q", result.DetectedLanguage)
	}
	if result.Outcome() != "success" {
		t.Fatalf("expected success outcome, got %q", result.Outcome())
	}
	if _, err := os.Stat(spec.IntermediateAudioPath()); !os.IsNotExist(err) {
		t.Fatalf("expected intermediate audio cleaned, got %v", err)
	}
	if result.FinalVideoPath != filepath.Join(spec.OutputDirectory, "movie.mp4") {
		t.Fatalf("unexpected final video path %q", result.FinalVideoPath)
	}
	if recognizer.lastReq.Task != "transcribe" {
		t.Fatalf("unexpected task %q", recognizer.lastReq.Task)
	}
}

func TestRunExtractionFailureIsFatal(t *testing.T) {
	spec := newTestSpec(t)
	transcoder := &fakeTranscoder{err: errors.New("exit status 1")}
	recognizer := &fakeRecognizer{}

	result, err := New(spec, transcoder, recognizer, nil).Run(context.Background())
	if err == nil {
		t.Fatal("expected fatal error for extraction failure")
	}
	if recognizer.calls != 0 {
		t.Fatal("recognizer must not run after extraction failure")
	}
	if result.FailedStage != StageExtracting {
		t.Fatalf("unexpected failed stage %q", result.FailedStage)
	}
	if result.Outcome() != "failed" {
		t.Fatalf("expected failed outcome, got %q", result.Outcome())
	}
	entries, globErr := filepath.Glob(filepath.Join(spec.OutputDirectory, "movie.*"))
	if globErr != nil {
		t.Fatalf("glob: %v", globErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no sidecar artifacts, got %v", entries)
	}
}

func TestRunRecognitionFailureIsSoft(t *testing.T) {
	spec := newTestSpec(t)
	transcoder := &fakeTranscoder{}
	// The recognizer writes a partial transcript before dying.
	recognizer := &fakeRecognizer{err: errors.New("exit status 2"), sidecars: map[string]string{".txt": "partial"}}

	result, err := New(spec, transcoder, recognizer, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("expected soft failure, got fatal %v", err)
	}
	if result.Recognition != RecognitionFailed {
		t.Fatalf("unexpected recognition status %q", result.Recognition)
	}
	if len(result.Artifacts) != 1 || filepath.Base(result.Artifacts[0]) != "movie.txt" {
		t.Fatalf("expected partial artifact collected, got %v", result.Artifacts)
	}
	if result.Outcome() != "degraded" {
		t.Fatalf("expected degraded outcome, got %q", result.Outcome())
	}
	// Later stages still ran.
	if _, statErr := os.Stat(spec.IntermediateAudioPath()); !os.IsNotExist(statErr) {
		t.Fatal("expected cleanup to run after recognition failure")
	}
	if result.FinalVideoPath != filepath.Join(spec.OutputDirectory, "movie.mp4") {
		t.Fatalf("expected video placed, got %q", result.FinalVideoPath)
	}
}

func TestRunSkipPolicyBypassesRecognizer(t *testing.T) {
	spec := newTestSpec(t)
	spec.SkipIfOutputExists = true
	existing := filepath.Join(spec.OutputDirectory, "movie.srt")
	if err := os.WriteFile(existing, []byte("original subtitle"), 0o644); err != nil {
		t.Fatalf("write existing subtitle: %v", err)
	}

	recognizer := &fakeRecognizer{sidecars: map[string]string{".srt": "would overwrite"}}
	result, err := New(spec, &fakeTranscoder{}, recognizer, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if recognizer.calls != 0 {
		t.Fatal("recognizer must not run when skip policy applies")
	}
	if result.Recognition != RecognitionSkipped {
		t.Fatalf("unexpected recognition status %q", result.Recognition)
	}
	data, readErr := os.ReadFile(existing)
	if readErr != nil {
		t.Fatalf("read subtitle: %v", readErr)
	}
	if string(data) != "original subtitle" {
		t.Fatalf("expected subtitle unchanged, got %q", data)
	}
	if !result.SubtitlePresent {
		t.Fatal("expected existing subtitle to be reported present")
	}
}

func TestRunSkipPolicyIgnoresStaleWorkDirLeftovers(t *testing.T) {
	spec := newTestSpec(t)
	spec.SkipIfOutputExists = true
	existing := filepath.Join(spec.OutputDirectory, "movie.srt")
	if err := os.WriteFile(existing, []byte("original subtitle"), 0o644); err != nil {
		t.Fatalf("write existing subtitle: %v", err)
	}
	// An interrupted earlier run left sidecars behind in the work dir.
	if err := os.MkdirAll(spec.RecognizerWorkDir(), 0o755); err != nil {
		t.Fatalf("mkdir work dir: %v", err)
	}
	stale := filepath.Join(spec.RecognizerWorkDir(), "movie.srt")
	if err := os.WriteFile(stale, []byte("stale leftover"), 0o644); err != nil {
		t.Fatalf("write stale sidecar: %v", err)
	}

	recognizer := &fakeRecognizer{}
	result, err := New(spec, &fakeTranscoder{}, recognizer, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if recognizer.calls != 0 {
		t.Fatal("recognizer must not run when skip policy applies")
	}
	data, readErr := os.ReadFile(existing)
	if readErr != nil {
		t.Fatalf("read subtitle: %v", readErr)
	}
	if string(data) != "original subtitle" {
		t.Fatalf("expected placed subtitle untouched, got %q", data)
	}
	for _, artifact := range result.Artifacts {
		if filepath.Base(artifact) == "movie.srt" {
			t.Fatalf("stale subtitle must not be collected, got %v", result.Artifacts)
		}
	}
}

func TestRunKeepExistingWhenOverwriteDisabled(t *testing.T) {
	spec := newTestSpec(t)
	existing := filepath.Join(spec.OutputDirectory, "movie.srt")
	if err := os.WriteFile(existing, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("write existing subtitle: %v", err)
	}

	recognizer := &fakeRecognizer{}
	result, err := New(spec, &fakeTranscoder{}, recognizer, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if recognizer.calls != 0 {
		t.Fatal("recognizer must not run when overwrite is disabled")
	}
	if result.Recognition != RecognitionKeptExisting {
		t.Fatalf("unexpected recognition status %q", result.Recognition)
	}
}

func TestRunOverwriteReplacesSubtitle(t *testing.T) {
	spec := newTestSpec(t)
	spec.OverwriteExisting = true
	existing := filepath.Join(spec.OutputDirectory, "movie.srt")
	if err := os.WriteFile(existing, []byte("old"), 0o644); err != nil {
		t.Fatalf("write existing subtitle: %v", err)
	}

	recognizer := &fakeRecognizer{sidecars: map[string]string{".srt": "new"}}
	result, err := New(spec, &fakeTranscoder{}, recognizer, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if recognizer.calls != 1 {
		t.Fatalf("expected recognizer invocation, got %d", recognizer.calls)
	}
	data, readErr := os.ReadFile(existing)
	if readErr != nil {
		t.Fatalf("read subtitle: %v", readErr)
	}
	if string(data) != "new" {
		t.Fatalf("expected replaced subtitle, got %q", data)
	}
	if result.Outcome() != "success" {
		t.Fatalf("expected success, got %q", result.Outcome())
	}
}

func TestRunPlacesVideoWithCollisionSuffix(t *testing.T) {
	spec := newTestSpec(t)
	occupied := filepath.Join(spec.OutputDirectory, "movie.mp4")
	if err := os.WriteFile(occupied, []byte("earlier video"), 0o644); err != nil {
		t.Fatalf("write occupying file: %v", err)
	}

	recognizer := &fakeRecognizer{sidecars: map[string]string{".srt": "s"}}
	result, err := New(spec, &fakeTranscoder{}, recognizer, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.FinalVideoPath != filepath.Join(spec.OutputDirectory, "movie_1.mp4") {
		t.Fatalf("expected suffixed placement, got %q", result.FinalVideoPath)
	}
	data, readErr := os.ReadFile(occupied)
	if readErr != nil {
		t.Fatalf("read occupying file: %v", readErr)
	}
	if string(data) != "earlier video" {
		t.Fatalf("expected occupying file untouched, got %q", data)
	}
}

func TestRunStageHookSequence(t *testing.T) {
	spec := newTestSpec(t)
	recognizer := &fakeRecognizer{sidecars: map[string]string{".srt": "s"}}
	p := New(spec, &fakeTranscoder{}, recognizer, nil)

	var stages []Stage
	p.OnStageChange(func(stage Stage) { stages = append(stages, stage) })
	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []Stage{StageExtracting, StageRecognizing, StageCollecting, StageCleaning, StagePlacing, StageDone}
	if len(stages) != len(want) {
		t.Fatalf("unexpected stage sequence %v", stages)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("stage %d = %q, want %q", i, stages[i], want[i])
		}
	}
}
