package runspec

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBaseNameOf(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/videos/movie.mp4", "movie"},
		{"movie.mp4", "movie"},
		{"archive.tar.gz", "archive.tar"},
		{"/videos/noext", "noext"},
	}
	for _, tc := range cases {
		if got := BaseNameOf(tc.path); got != tc.want {
			t.Fatalf("BaseNameOf(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := Config{BaseName: "movie", OutputDirectory: "/out"}
	if got := cfg.IntermediateAudioPath(); got != filepath.Join("/out", "movie.wav") {
		t.Fatalf("unexpected wav path %q", got)
	}
	if got := cfg.SubtitlePath(); got != filepath.Join("/out", "movie.srt") {
		t.Fatalf("unexpected subtitle path %q", got)
	}
	if got := cfg.RecognizerWorkDir(); got != filepath.Join("/out", ".work") {
		t.Fatalf("unexpected work dir %q", got)
	}
	if got := cfg.DetectedLanguageProbePath(); got != filepath.Join("/out", "movie.json") {
		t.Fatalf("unexpected probe path %q", got)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "movie.mp4")
	if err := os.WriteFile(video, []byte("x"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}

	valid := Config{
		InputVideoPath:  video,
		BaseName:        "movie",
		OutputDirectory: dir,
		TaskMode:        TaskTranscribe,
		ModelSize:       "small",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	missing := valid
	missing.InputVideoPath = filepath.Join(dir, "absent.mp4")
	if err := missing.Validate(); err == nil {
		t.Fatal("expected error for missing video")
	}

	badTask := valid
	badTask.TaskMode = Task("summarize")
	if err := badTask.Validate(); err == nil {
		t.Fatal("expected error for unknown task")
	}

	dirInput := valid
	dirInput.InputVideoPath = dir
	if err := dirInput.Validate(); err == nil {
		t.Fatal("expected error for directory input")
	}
}
