package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lingopipe/internal/dialogue"
	"lingopipe/internal/testsupport"
)

// writeTestConfig writes a config file whose directories all live in
// temporary space and returns its path.
func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	audioDir := t.TempDir()
	base := t.TempDir()
	content := `
[paths]
audio_dir = "` + audioDir + `"
work_dir = "` + filepath.Join(base, "work") + `"
log_dir = "` + filepath.Join(base, "logs") + `"
database_path = "` + filepath.Join(base, "journal.db") + `"
`
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path, audioDir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("output = %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample missing: %v", err)
	}

	// A second init without --overwrite must refuse.
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error for existing config")
	}
}

func TestConfigValidateWithFile(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	out, err := runCommand(t, "-c", cfgPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("output = %q", out)
	}
}

func TestStripPunctCommand(t *testing.T) {
	cfgPath, audioDir := writeTestConfig(t)
	id := "a1b2c3"

	doc := dialogue.Document{
		ID: id,
		Dialogue: []dialogue.Phrase{
			{Speaker: "mai", Text: "Hello, world!"},
		},
	}
	testsupport.WriteJSON(t, dialogue.DocumentPath(audioDir, id), doc)

	out, err := runCommand(t, "-c", cfgPath, "strip-punct", id)
	if err != nil {
		t.Fatalf("strip-punct: %v", err)
	}
	if !strings.Contains(out, "_no_punctuation") {
		t.Fatalf("output = %q", out)
	}

	stripped, err := dialogue.LoadDocument(dialogue.NoPunctuationPath(audioDir, id))
	if err != nil {
		t.Fatalf("load stripped: %v", err)
	}
	if stripped.Dialogue[0].Text != "Hello world" {
		t.Fatalf("text = %q", stripped.Dialogue[0].Text)
	}
}

func TestAlignCommandMissingDocument(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	if _, err := runCommand(t, "-c", cfgPath, "align", "ffffff"); err == nil {
		t.Fatal("expected error for missing document")
	}
}

func TestRunsCommandEmptyJournal(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	out, err := runCommand(t, "-c", cfgPath, "runs")
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if !strings.Contains(out, "No runs recorded") {
		t.Fatalf("output = %q", out)
	}
}

func TestRunsCommandAfterStrip(t *testing.T) {
	cfgPath, audioDir := writeTestConfig(t)
	id := "a1b2c3"

	doc := dialogue.Document{
		ID:       id,
		Dialogue: []dialogue.Phrase{{Speaker: "mai", Text: "Hi, there."}},
	}
	testsupport.WriteJSON(t, dialogue.DocumentPath(audioDir, id), doc)

	if _, err := runCommand(t, "-c", cfgPath, "strip-punct", id); err != nil {
		t.Fatalf("strip-punct: %v", err)
	}

	out, err := runCommand(t, "-c", cfgPath, "runs", "--dialogue", id, "--json")
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if !strings.Contains(out, `"DialogueID": "a1b2c3"`) {
		t.Fatalf("output = %q", out)
	}
}
