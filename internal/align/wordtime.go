package align

import (
	"math"
	"sort"
	"strings"

	"lingopipe/internal/textutil"
)

const (
	// DefaultTolerance bounds how far (seconds) a candidate's midpoint may
	// sit from the expected time in the tight search phase.
	DefaultTolerance = 1.7
	// ambiguityMargin is how much closer the best candidate must be than
	// the runner-up before a multi-candidate match is accepted.
	ambiguityMargin = 0.5
)

// DefaultStopWords are high-frequency function words too ambiguous to
// anchor a phrase endpoint reliably.
var DefaultStopWords = []string{
	"i", "you", "the", "a", "an", "and", "is", "are",
	"to", "in", "it", "that", "of", "for", "on", "with",
}

// stopSet is a lookup form of a stoplist.
type stopSet map[string]struct{}

func newStopSet(words []string) stopSet {
	set := make(stopSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func (s stopSet) contains(word string) bool {
	_, ok := s[word]
	return ok
}

// FindWordByTime locates a single word near an expected time. Stoplist
// words are rejected outright. Within the tolerance window exactly one
// candidate wins; multiple candidates win only when the closest beats the
// runner-up by ambiguityMargin. With no candidate in the window, a word
// that occurs exactly once in the whole stream is unambiguous and wins
// regardless of timing. Everything else is nil.
func FindWordByTime(word string, s *Stream, expectedTime, tolerance float64, stop stopSet) *Anchor {
	clean := strings.TrimSpace(textutil.Fold(word))
	if clean == "" {
		return nil
	}
	if stop.contains(clean) {
		return nil
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	type timed struct {
		anchor   Anchor
		distance float64
	}
	var within []timed
	for i := range s.tokens {
		if !wordsMatch(s.folded[i], clean) {
			continue
		}
		distance := math.Abs(s.tokens[i].Midpoint() - expectedTime)
		if distance <= tolerance {
			within = append(within, timed{anchor: *s.anchor(i), distance: distance})
		}
	}

	switch {
	case len(within) == 1:
		return &within[0].anchor
	case len(within) > 1:
		sort.SliceStable(within, func(i, j int) bool {
			return within[i].distance < within[j].distance
		})
		if within[0].distance+ambiguityMargin < within[1].distance {
			return &within[0].anchor
		}
		// Ambiguous: do not guess.
		return nil
	}

	// Global fallback: a word occurring exactly once anywhere is safe to
	// use even far outside the window.
	var only *Anchor
	for i := range s.tokens {
		if !wordsMatch(s.folded[i], clean) {
			continue
		}
		if only != nil {
			return nil
		}
		only = s.anchor(i)
	}
	return only
}
