package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected missing file to be reported")
	}
	if path == "" {
		t.Fatal("expected resolved path even for missing file")
	}
	if cfg.Tools.Transcoder != "ffmpeg" || cfg.Tools.Recognizer != "whisper" {
		t.Fatalf("unexpected tool defaults: %+v", cfg.Tools)
	}
	if cfg.Defaults.Model != "small" {
		t.Fatalf("unexpected model default: %q", cfg.Defaults.Model)
	}
	if !cfg.Defaults.CleanWAV {
		t.Fatal("expected clean_wav default true")
	}
	if cfg.Defaults.Overwrite || cfg.Defaults.SkipIfExists {
		t.Fatalf("expected overwrite/skip defaults false: %+v", cfg.Defaults)
	}
}

func TestLoadParsesFileAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[tools]
recognizer = "whisper-ctranslate2"

[defaults]
model = "MEDIUM"

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists {
		t.Fatal("expected file to be found")
	}
	if cfg.Tools.Recognizer != "whisper-ctranslate2" {
		t.Fatalf("unexpected recognizer: %q", cfg.Tools.Recognizer)
	}
	if cfg.Defaults.Model != "medium" {
		t.Fatalf("expected lowercased model, got %q", cfg.Defaults.Model)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased level, got %q", cfg.Logging.Level)
	}
	if !filepath.IsAbs(cfg.Paths.LogDir) {
		t.Fatalf("expected expanded log dir, got %q", cfg.Paths.LogDir)
	}
}

func TestLoadRejectsInvalidModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[defaults]\nmodel = \"gigantic\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "defaults.model") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsInvalidLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"yaml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Defaults.Model != "small" {
		t.Fatalf("sample should carry defaults, got %q", cfg.Defaults.Model)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := ExpandPath("~/sub/dir")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "sub", "dir") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
