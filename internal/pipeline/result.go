package pipeline

import (
	"time"

	"gensubs/internal/runspec"
)

// RecognitionStatus records how the recognition stage concluded.
type RecognitionStatus string

const (
	// RecognitionRan means the recognizer was invoked and exited zero.
	RecognitionRan RecognitionStatus = "ran"
	// RecognitionSkipped means an existing subtitle triggered the skip policy.
	RecognitionSkipped RecognitionStatus = "skipped"
	// RecognitionKeptExisting means an existing subtitle was kept because
	// overwrite was disabled.
	RecognitionKeptExisting RecognitionStatus = "kept existing"
	// RecognitionFailed means the recognizer exited non-zero; the pipeline
	// continued and collected whatever partial output was present.
	RecognitionFailed RecognitionStatus = "failed"
)

// Result accumulates observed filesystem state as stages execute. It lives
// for a single invocation only.
type Result struct {
	Spec      runspec.Config
	RunID     string
	StartedAt time.Time
	Elapsed   time.Duration

	IntermediateAudioPath string
	Recognition           RecognitionStatus
	Artifacts             []string
	SubtitlePresent       bool
	DetectedLanguage      string
	FinalVideoPath        string

	// FailedStage is set only on the fatal path.
	FailedStage Stage
	// SoftErrors aggregates every non-fatal failure for the final summary.
	SoftErrors []error
}

func (r *Result) addSoft(err error) {
	if err != nil {
		r.SoftErrors = append(r.SoftErrors, err)
	}
}

// Outcome classifies the run for the summary and the history store.
func (r *Result) Outcome() string {
	switch {
	case r.FailedStage != "":
		return "failed"
	case r.Recognition == RecognitionFailed || len(r.SoftErrors) > 0:
		return "degraded"
	case r.Recognition == RecognitionSkipped:
		return "skipped"
	default:
		return "success"
	}
}
