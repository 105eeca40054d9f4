package dialogue

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Audio filename patterns, oldest convention first. The dialogue ID is the
// trailing hex component in every generation of the naming scheme.
var (
	legacyAudioPattern = regexp.MustCompile(`^dialogue_([a-f0-9]+)_elevenlabs_slow\.mp3$`)
	plainAudioPattern  = regexp.MustCompile(`^dialogue_([a-f0-9]+)\.mp3$`)
	topicAudioPattern  = regexp.MustCompile(`^.*_([a-f0-9]+)\.mp3$`)

	canonicalPattern = regexp.MustCompile(`^dialogue_([a-f0-9]+)\.json$`)
)

// derivativeSuffixes mark companion files that must never be treated as
// canonical documents during discovery.
var derivativeSuffixes = []string{
	"_auto.json",
	"_adjusted.json",
	"_no_punctuation.json",
	"_original.json",
}

// ExtractID pulls the dialogue ID out of an audio filename, trying each
// naming convention in order. Returns false when no pattern matches.
func ExtractID(filename string) (string, bool) {
	base := filepath.Base(filename)
	for _, pattern := range []*regexp.Regexp{legacyAudioPattern, plainAudioPattern, topicAudioPattern} {
		if m := pattern.FindStringSubmatch(base); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// CanonicalID extracts the dialogue ID from a canonical JSON filename,
// rejecting derivative companions.
func CanonicalID(filename string) (string, bool) {
	base := filepath.Base(filename)
	for _, suffix := range derivativeSuffixes {
		if strings.HasSuffix(base, suffix) {
			return "", false
		}
	}
	if m := canonicalPattern.FindStringSubmatch(base); m != nil {
		return m[1], true
	}
	return "", false
}

// DocumentPath returns the canonical dialogue JSON path for an ID.
func DocumentPath(dir, id string) string {
	return filepath.Join(dir, fmt.Sprintf("dialogue_%s.json", id))
}

// AutoPath returns the ASR-grouped document path for an ID.
func AutoPath(dir, id string) string {
	return filepath.Join(dir, fmt.Sprintf("dialogue_%s_auto.json", id))
}

// AdjustedPath returns the alignment output path for an ID.
func AdjustedPath(dir, id string) string {
	return filepath.Join(dir, fmt.Sprintf("dialogue_%s_adjusted.json", id))
}

// BackupPath returns the pre-overwrite backup path for an ID.
func BackupPath(dir, id string) string {
	return filepath.Join(dir, fmt.Sprintf("dialogue_%s_original.json", id))
}

// NoPunctuationPath returns the punctuation-stripped derivative path.
func NoPunctuationPath(dir, id string) string {
	return filepath.Join(dir, fmt.Sprintf("dialogue_%s_no_punctuation.json", id))
}

// TokensPath returns the raw ASR word timestamp JSON path for an ID.
func TokensPath(dir, id string) string {
	return filepath.Join(dir, fmt.Sprintf("word_timestamps_%s.json", id))
}

// TokensCSVPath returns the CSV sidecar path for an ID.
func TokensCSVPath(dir, id string) string {
	return filepath.Join(dir, fmt.Sprintf("word_timestamps_%s.csv", id))
}
