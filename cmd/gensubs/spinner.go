package main

import (
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"gensubs/internal/pipeline"
)

var stageLabels = map[pipeline.Stage]string{
	pipeline.StageExtracting:  "Extracting audio",
	pipeline.StageRecognizing: "Recognizing speech",
	pipeline.StageCollecting:  "Collecting subtitles",
	pipeline.StageCleaning:    "Cleaning up",
	pipeline.StagePlacing:     "Placing video",
	pipeline.StageDone:        "Done",
}

// stageSpinner animates an indeterminate spinner labeled with the current
// pipeline stage. In non-interactive sessions it does nothing; the
// structured log carries the stage transitions instead.
type stageSpinner struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
	once sync.Once

	mu sync.Mutex
}

func newStageSpinner(out io.Writer, interactive bool) *stageSpinner {
	s := &stageSpinner{done: make(chan struct{})}
	if !interactive {
		return s
	}
	s.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription("Starting"),
		progressbar.OptionClearOnFinish(),
	)
	go s.tick()
	return s
}

func (s *stageSpinner) tick() {
	ticker := time.NewTicker(120 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			_ = s.bar.Add(1)
			s.mu.Unlock()
		}
	}
}

func (s *stageSpinner) setStage(stage pipeline.Stage) {
	if s.bar == nil {
		return
	}
	label, ok := stageLabels[stage]
	if !ok {
		label = string(stage)
	}
	s.mu.Lock()
	s.bar.Describe(label)
	s.mu.Unlock()
}

func (s *stageSpinner) stop() {
	s.once.Do(func() {
		close(s.done)
		if s.bar != nil {
			s.mu.Lock()
			_ = s.bar.Finish()
			s.mu.Unlock()
		}
	})
}
