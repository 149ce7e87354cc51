package ffmpeg

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewCLIWithBinary(t *testing.T) {
	cli := NewCLI(WithBinary("/opt/ffmpeg"))
	if cli.binary != "/opt/ffmpeg" {
		t.Fatalf("expected binary override to be applied, got %q", cli.binary)
	}
}

func TestExtractAudioRequiresPaths(t *testing.T) {
	cli := NewCLI()
	if err := cli.ExtractAudio(context.Background(), "", "/tmp/out.wav"); err == nil {
		t.Fatal("expected error when source is empty")
	}
	if err := cli.ExtractAudio(context.Background(), "/media/movie.mp4", ""); err == nil {
		t.Fatal("expected error when destination is empty")
	}
}

func TestExtractAudioBuildsNormalizedWAVArgs(t *testing.T) {
	var capturedName string
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedName = name
		capturedArgs = append([]string(nil), args...)
		return exec.CommandContext(ctx, "true")
	}
	t.Cleanup(func() { commandContext = original })

	cli := NewCLI(WithBinary("ffmpeg-custom"))
	if err := cli.ExtractAudio(context.Background(), "/media/movie.mp4", "/out/movie.wav"); err != nil {
		t.Fatalf("extract: %v", err)
	}

	if capturedName != "ffmpeg-custom" {
		t.Fatalf("unexpected binary %q", capturedName)
	}
	joined := strings.Join(capturedArgs, " ")
	for _, want := range []string{
		"-i /media/movie.mp4",
		"-ar 16000",
		"-ac 1",
		"-c:a pcm_s16le",
		"/out/movie.wav",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in args %q", want, joined)
		}
	}
}

func TestExtractAudioReportsFailureOutput(t *testing.T) {
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "ffmpeg-stub")
	script := "#!/bin/sh\necho 'movie.mp4: Invalid data found' >&2\nexit 1\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	cli := NewCLI(WithBinary(stub))
	err := cli.ExtractAudio(context.Background(), "movie.mp4", filepath.Join(binDir, "movie.wav"))
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Fatalf("expected tool output in error, got %v", err)
	}
}
