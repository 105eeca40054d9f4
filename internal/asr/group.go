package asr

import (
	"strings"

	"lingopipe/internal/dialogue"
	"lingopipe/internal/language"
	"lingopipe/internal/textutil"
)

// MaxWordsPerPhrase caps ASR-grouped phrase length for subtitle display.
const MaxWordsPerPhrase = 3

// GroupPhrases folds recognized tokens into display phrases: a phrase ends
// on speaker change, on punctuation, or at the word cap. Punctuation joins
// the phrase it terminates. Each phrase keeps its per-word timestamps.
func GroupPhrases(tokens []dialogue.WordToken, maxWords int) []dialogue.Phrase {
	if len(tokens) == 0 {
		return nil
	}
	if maxWords <= 0 {
		maxWords = MaxWordsPerPhrase
	}

	var phrases []dialogue.Phrase

	current := struct {
		words   []string
		stamps  []dialogue.WordToken
		speaker string
		start   float64
		end     float64
	}{
		speaker: tokens[0].Speaker,
		start:   tokens[0].Start,
		end:     tokens[0].End,
	}

	flush := func() {
		if len(current.words) == 0 {
			return
		}
		phrases = append(phrases, dialogue.Phrase{
			Speaker:        current.speaker,
			Text:           strings.Join(current.words, " "),
			StartTime:      dialogue.Round2(current.start),
			EndTime:        dialogue.Round2(current.end),
			WordTimestamps: current.stamps,
		})
	}

	for _, tok := range tokens {
		isPunct := textutil.IsPunctuation(tok.Word)

		if tok.Speaker != current.speaker || len(current.words) >= maxWords || isPunct {
			if isPunct {
				current.words = append(current.words, tok.Word)
				current.stamps = append(current.stamps, tok)
				current.end = tok.End
			}
			flush()

			if isPunct {
				// Next phrase starts after the punctuation mark, empty.
				current.words = nil
				current.stamps = nil
				current.speaker = tok.Speaker
				current.start = tok.End
				current.end = tok.End
			} else {
				current.words = []string{tok.Word}
				current.stamps = []dialogue.WordToken{tok}
				current.speaker = tok.Speaker
				current.start = tok.Start
				current.end = tok.End
			}
			continue
		}

		current.words = append(current.words, tok.Word)
		current.stamps = append(current.stamps, tok)
		current.end = tok.End
	}
	flush()
	return phrases
}

// AnnotateVietWords fills each phrase's viet_words with the target-language
// tokens found in its text.
func AnnotateVietWords(phrases []dialogue.Phrase, vocab language.Vocabulary) []dialogue.Phrase {
	out := make([]dialogue.Phrase, len(phrases))
	for i, phrase := range phrases {
		p := phrase.Clone()
		p.VietWords = nil
		for _, word := range textutil.Words(p.Text) {
			if language.IsTargetWord(word, vocab) {
				p.VietWords = append(p.VietWords, word)
			}
		}
		out[i] = p
	}
	return out
}
