package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeStubTool(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
}

func TestRootWithoutArgsFails(t *testing.T) {
	isolateHome(t)

	out, err := runCLI(t, nil)
	if err == nil {
		t.Fatal("expected missing input video to be an error")
	}
	if !strings.Contains(err.Error(), "no input video supplied") {
		t.Fatalf("unexpected error: %v", err)
	}
	requireContains(t, out, "gensubs [video]")
}

func TestConfigInitWritesSample(t *testing.T) {
	isolateHome(t)
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, []string{"config", "init", "--path", target})
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, []string{"config", "init", "--path", target}); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShowReportsDefaults(t *testing.T) {
	isolateHome(t)

	out, err := runCLI(t, []string{"config", "show"})
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "defaults were used")
	requireContains(t, out, "whisper")
}

func TestConfigPathPrintsDefaultLocation(t *testing.T) {
	home := isolateHome(t)

	out, err := runCLI(t, []string{"config", "path"})
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	requireContains(t, out, filepath.Join(home, ".config", "gensubs", "config.toml"))
}

func TestToolsReportsMissingRecognizer(t *testing.T) {
	isolateHome(t)
	bin := t.TempDir()
	writeStubTool(t, bin, "ffmpeg")
	t.Setenv("PATH", bin)

	out, err := runCLI(t, []string{"tools"})
	if err == nil {
		t.Fatal("expected missing-tool error")
	}
	requireContains(t, out, "Transcoder")
	requireContains(t, out, "missing")
}

func TestToolsAllAvailable(t *testing.T) {
	isolateHome(t)
	bin := t.TempDir()
	writeStubTool(t, bin, "ffmpeg")
	writeStubTool(t, bin, "whisper")
	t.Setenv("PATH", bin)

	out, err := runCLI(t, []string{"tools"})
	if err != nil {
		t.Fatalf("tools: %v", err)
	}
	requireContains(t, out, "ok")
	if strings.Contains(out, "missing") {
		t.Fatalf("unexpected missing tool:\n%s", out)
	}
}

func TestHistoryEmpty(t *testing.T) {
	isolateHome(t)

	out, err := runCLI(t, []string{"history"})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded yet.")
}

func TestRunRejectsUnknownModelFlag(t *testing.T) {
	isolateHome(t)
	bin := t.TempDir()
	writeStubTool(t, bin, "ffmpeg")
	writeStubTool(t, bin, "whisper")
	t.Setenv("PATH", bin)

	video := filepath.Join(t.TempDir(), "movie.mp4")
	if err := os.WriteFile(video, []byte("video"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}

	_, err := runCLI(t, []string{video, "--model", "enormous", "--yes"})
	if err == nil {
		t.Fatal("expected unknown model error")
	}
	if !strings.Contains(err.Error(), "model") {
		t.Fatalf("unexpected error: %v", err)
	}
}
