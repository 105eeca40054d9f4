package estimate

import (
	"strings"

	"lingopipe/internal/dialogue"
	"lingopipe/internal/language"
	"lingopipe/internal/textutil"
)

const (
	// speakerPause is the gap inserted between speaker turns, matching the
	// pause the synthesis step stitches between line recordings.
	speakerPause = 0.05
	// minWordDuration floors very short words before rescaling.
	minWordDuration = 0.2
	// punctuationDuration is the fixed allotment for a punctuation token.
	punctuationDuration = 0.1
	// punctuationWeight is the character weight of a punctuation token when
	// splitting a line's duration among its units.
	punctuationWeight = 3
	// maxPhraseWords caps display phrase length.
	maxPhraseWords = 3
)

// VocabularyFromScript collects the per-dialogue target-language vocabulary:
// the topic word plus every common word, lowercased.
func VocabularyFromScript(script dialogue.Script) language.Vocabulary {
	entries := make([]string, 0, len(script.CommonWords)+1)
	if script.TopicWord != "" {
		entries = append(entries, script.TopicWord)
	}
	for _, cw := range script.CommonWords {
		entries = append(entries, cw.Word)
	}
	return language.NewVocabulary(entries...)
}

// Timeline distributes totalDuration across the script's lines by character
// count and returns display phrases with proportional word-level timing.
// A zero total character count degenerates to all-zero durations, which is
// passed through rather than treated as an error.
func Timeline(totalDuration float64, script dialogue.Script, vocab language.Vocabulary) []dialogue.Phrase {
	totalChars := 0
	for _, line := range script.EnglishDialogue {
		totalChars += len(line.Text)
	}
	durationPerChar := 0.0
	if totalChars > 0 {
		durationPerChar = totalDuration / float64(totalChars)
	}

	var phrases []dialogue.Phrase
	currentTime := 0.0

	for i, line := range script.EnglishDialogue {
		lineDuration := float64(len(line.Text)) * durationPerChar
		if i > 0 {
			currentTime += speakerPause
		}

		units := SplitLine(line.Text, vocab)
		durations := unitDurations(units, lineDuration)

		phrases = append(phrases, groupUnits(line.Speaker, units, durations, currentTime)...)
		currentTime += lineDuration
	}
	return phrases
}

// unitDurations assigns each unit a share of lineDuration proportional to
// its character length (with a floor for short words and a fixed cost for
// punctuation), then rescales so the shares sum exactly to lineDuration.
func unitDurations(units []Unit, lineDuration float64) []float64 {
	totalWeight := 0
	for _, unit := range units {
		if unit.Punctuation {
			totalWeight += punctuationWeight
		} else {
			totalWeight += len(unit.Text)
		}
	}

	durations := make([]float64, len(units))
	for i, unit := range units {
		if unit.Punctuation {
			durations[i] = punctuationDuration
			continue
		}
		d := 0.0
		if totalWeight > 0 {
			d = float64(len(unit.Text)) / float64(totalWeight) * lineDuration
		}
		if d < minWordDuration {
			d = minWordDuration
		}
		durations[i] = d
	}

	total := 0.0
	for _, d := range durations {
		total += d
	}
	if total > 0 {
		factor := lineDuration / total
		for i := range durations {
			durations[i] *= factor
		}
	}
	return durations
}

// groupUnits walks a line's units in order and emits display phrases of at
// most maxPhraseWords units, breaking early on sentence-ending punctuation.
func groupUnits(speaker string, units []Unit, durations []float64, start float64) []dialogue.Phrase {
	var phrases []dialogue.Phrase

	var (
		words       []string
		vietWords   []string
		phraseStart = start
		cursor      = start
	)

	flush := func(end float64) {
		text := strings.TrimSpace(strings.Join(words, " "))
		if text != "" {
			phrases = append(phrases, dialogue.Phrase{
				Speaker:   speaker,
				Text:      text,
				VietWords: dedupe(vietWords),
				StartTime: dialogue.Round2(phraseStart),
				EndTime:   dialogue.Round2(end),
			})
		}
		words = nil
		vietWords = nil
		phraseStart = end
	}

	for i, unit := range units {
		end := cursor + durations[i]
		words = append(words, unit.Text)
		vietWords = append(vietWords, unit.VietWords...)

		sentenceBreak := unit.Punctuation && textutil.SentenceEnd(unit.Text)
		if sentenceBreak || len(words) >= maxPhraseWords || i == len(units)-1 {
			flush(end)
		}
		cursor = end
	}
	return phrases
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
