package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("exists = true for missing file")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if cfg.ASR.Command != "vosk-transcriber" {
		t.Fatalf("asr command = %q", cfg.ASR.Command)
	}
	if cfg.Alignment.Tolerance != 1.7 {
		t.Fatalf("tolerance = %v", cfg.Alignment.Tolerance)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
audio_dir = "` + dir + `/audio"

[asr]
command = "whisper-cli"

[alignment]
tolerance = 2.5
stop_words = ["The ", "A"]

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("exists = false")
	}
	if cfg.ASR.Command != "whisper-cli" {
		t.Fatalf("asr command = %q", cfg.ASR.Command)
	}
	if cfg.Alignment.Tolerance != 2.5 {
		t.Fatalf("tolerance = %v", cfg.Alignment.Tolerance)
	}
	// Stop words are lowered and trimmed during normalization.
	if len(cfg.Alignment.StopWords) != 2 || cfg.Alignment.StopWords[0] != "the" {
		t.Fatalf("stop words = %v", cfg.Alignment.StopWords)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[logging]\nformat = \"xml\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for xml log format")
	}
}

func TestValidateRejectsNegativeTolerance(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "console"
	cfg.Logging.Level = "info"
	cfg.Alignment.Tolerance = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative tolerance")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	got, err := ExpandPath("~/lingopipe/audio")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if !strings.HasPrefix(got, home) {
		t.Fatalf("expanded path %q does not start with home %q", got, home)
	}
}

func TestCreateSampleWritesParseableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample config not found after CreateSample")
	}
	if cfg.ASR.Command != "vosk-transcriber" {
		t.Fatalf("asr command = %q", cfg.ASR.Command)
	}
}
