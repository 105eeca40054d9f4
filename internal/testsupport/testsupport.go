// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"lingopipe/internal/config"
)

// NewConfig returns a validated config whose directories all live under
// temporary space owned by the test.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.AudioDir = t.TempDir()
	cfg.Paths.WorkDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.DatabasePath = filepath.Join(t.TempDir(), "journal.db")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WriteJSON marshals value into path, creating parent directories.
func WriteJSON(t *testing.T, path string, value any) {
	t.Helper()
	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal %s: %v", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", filepath.Base(path), err)
	}
}
