package whisper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Request describes a single recognizer invocation.
type Request struct {
	// AudioPath is the staged mono 16 kHz WAV.
	AudioPath string
	// Model is the size name (tiny, base, small, medium, large).
	Model string
	// Language is forwarded verbatim; empty means auto-detect and omits
	// the flag entirely. The recognizer is authoritative on validity.
	Language string
	// Task is "transcribe" or "translate".
	Task string
	// WorkDir is where the recognizer runs and writes its sidecar files.
	WorkDir string
}

// Client defines the recognizer behaviour the pipeline depends on.
type Client interface {
	Transcribe(ctx context.Context, req Request) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the whisper command-line recognizer.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "whisper"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Transcribe runs the recognizer. Sidecar files are written into
// req.WorkDir, named after the audio file's base name. The recognizer may
// leave partial output behind even when it exits non-zero; callers collect
// whatever is present regardless of the returned error.
func (c *CLI) Transcribe(ctx context.Context, req Request) error {
	if strings.TrimSpace(req.AudioPath) == "" {
		return errors.New("audio path required")
	}
	if strings.TrimSpace(req.WorkDir) == "" {
		return errors.New("work dir required")
	}
	if err := os.MkdirAll(req.WorkDir, 0o755); err != nil {
		return fmt.Errorf("ensure work dir: %w", err)
	}

	cmd := commandContext(ctx, c.binary, buildArgs(req)...) //nolint:gosec
	cmd.Dir = req.WorkDir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("whisper: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func buildArgs(req Request) []string {
	args := []string{req.AudioPath, "--model", req.Model, "--task", req.Task}
	if lang := strings.TrimSpace(req.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	return args
}

var _ Client = (*CLI)(nil)
