package dialogue

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"lingopipe/internal/language"
)

// ErrNotFound indicates a required companion file is absent. Callers treat
// this as a per-document skip, not a batch failure.
var ErrNotFound = errors.New("dialogue: file not found")

// ErrMalformed indicates a companion file exists but is not valid JSON.
var ErrMalformed = errors.New("dialogue: malformed file")

// LoadDocument reads a dialogue document from disk.
func LoadDocument(path string) (Document, error) {
	var doc Document
	if err := loadJSON(path, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// SaveDocument writes a dialogue document as indented UTF-8 JSON with HTML
// escaping disabled so target-language markup survives byte-for-byte.
func SaveDocument(path string, doc Document) error {
	return saveJSON(path, doc)
}

// LoadScript reads a generator script document.
func LoadScript(path string) (Script, error) {
	var script Script
	if err := loadJSON(path, &script); err != nil {
		return Script{}, err
	}
	return script, nil
}

// LoadTokens reads raw ASR word tokens from disk.
func LoadTokens(path string) ([]WordToken, error) {
	var tokens []WordToken
	if err := loadJSON(path, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// SaveTokens writes raw ASR word tokens as indented JSON.
func SaveTokens(path string, tokens []WordToken) error {
	return saveJSON(path, tokens)
}

// WriteTokenCSV writes the human-readable token sidecar with columns
// Word, Start Time, End Time, Speaker. Times round to three decimals and
// speaker labels are normalized for display.
func WriteTokenCSV(path string, tokens []WordToken) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure csv directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create token csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Word", "Start Time", "End Time", "Speaker"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, tok := range tokens {
		record := []string{
			tok.Word,
			strconv.FormatFloat(Round3(tok.Start), 'f', -1, 64),
			strconv.FormatFloat(Round3(tok.End), 'f', -1, 64),
			language.SpeakerDisplayName(tok.Speaker),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

// FindScript scans dir for the script whose embedded ID matches. Unreadable
// or malformed entries are skipped; only a full scan miss is an error.
func FindScript(dir, id string) (Script, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Script{}, fmt.Errorf("read script directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		script, err := LoadScript(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		// Generated documents share the ID but carry no script lines;
		// skip them so re-runs do not pick up our own output.
		if script.ID == id && len(script.EnglishDialogue) > 0 {
			return script, nil
		}
	}
	return Script{}, fmt.Errorf("%w: no script with id %s in %s", ErrNotFound, id, dir)
}

// CopyFile streams src to dst with default permissions. Used for backups
// and promotion so the canonical file is never partially written in place.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// Round2 rounds to two decimal places, the persistence precision for
// phrase times.
func Round2(v float64) float64 {
	return roundTo(v, 100)
}

// Round3 rounds to three decimal places, the persistence precision for raw
// token times.
func Round3(v float64) float64 {
	return roundTo(v, 1000)
}

func roundTo(v float64, scale float64) float64 {
	if v < 0 {
		return -roundTo(-v, scale)
	}
	scaled := v*scale + 0.5
	return float64(int64(scaled)) / scale
}

func loadJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return nil
}

func saveJSON(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure directory: %w", err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
