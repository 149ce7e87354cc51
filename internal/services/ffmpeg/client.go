package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Client defines the transcoder behaviour the pipeline depends on.
type Client interface {
	ExtractAudio(ctx context.Context, source, dest string) error
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

// CLI wraps the ffmpeg command-line transcoder.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// ExtractAudio produces a mono 16 kHz, 16-bit PCM WAV at dest, the format
// the recognizer expects. A non-zero exit is returned as an error carrying
// ffmpeg's combined output.
func (c *CLI) ExtractAudio(ctx context.Context, source, dest string) error {
	if strings.TrimSpace(source) == "" {
		return errors.New("source path required")
	}
	if strings.TrimSpace(dest) == "" {
		return errors.New("destination path required")
	}

	cmd := commandContext(ctx, c.binary, buildExtractArgs(source, dest)...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// buildExtractArgs assembles the extraction invocation. -y keeps re-runs
// idempotent when a stale WAV is still present.
func buildExtractArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		dest,
	}
}

var _ Client = (*CLI)(nil)
