package align

import (
	"math"
	"sort"
	"strings"

	"lingopipe/internal/dialogue"
	"lingopipe/internal/textutil"
)

// Anchor is a matched ASR token together with its stream index. Follow-up
// adjustments (such as discarding a neighbor phrase's words from a
// transition match) shift the index instead of re-searching the stream,
// so duplicate token values cannot confuse them.
type Anchor struct {
	Token dialogue.WordToken
	Index int
}

// matchCandidate ranks one window match by its distance from the expected
// position. Candidates exist only during selection.
type matchCandidate struct {
	start    Anchor
	end      Anchor
	distance float64
}

// Stream pairs raw ASR tokens with their folded comparison forms, computed
// once per alignment run and shared by every matcher call.
type Stream struct {
	tokens     []dialogue.WordToken
	folded []string
}

func NewStream(tokens []dialogue.WordToken) *Stream {
	folded := make([]string, len(tokens))
	for i, tok := range tokens {
		folded[i] = strings.TrimSpace(textutil.Fold(tok.Word))
	}
	return &Stream{tokens: tokens, folded: folded}
}

func (s *Stream) anchor(i int) *Anchor {
	return &Anchor{Token: s.tokens[i], Index: i}
}

// wordsMatch reports whether a folded ASR token and a folded target word
// should be considered the same word. Substring containment in either
// direction absorbs partial transcriptions and compound tokens. Empty
// strings never match anything.
func wordsMatch(asrWord, targetWord string) bool {
	if asrWord == "" || targetWord == "" {
		return false
	}
	return asrWord == targetWord ||
		strings.Contains(asrWord, targetWord) ||
		strings.Contains(targetWord, asrWord)
}

// FindSequence locates targetWords as a contiguous window in the ASR
// stream. With a position hint, all matching windows are ranked by the
// distance between their time midpoint and the hint, ties broken by stream
// order. Without a hint the first window wins.
//
// When no whole window matches, the boundary fallback anchors the first
// target word by forward scan and the last by backward scan, independently;
// either anchor may be nil.
func FindSequence(targetWords []string, s *Stream, position *float64) (start, end *Anchor) {
	if len(targetWords) == 0 || s == nil || len(s.tokens) == 0 {
		return nil, nil
	}

	clean := foldWords(targetWords)
	if start, end = findWindow(clean, s, position); start != nil {
		return start, end
	}
	return scanEdges(clean, s)
}

func foldWords(words []string) []string {
	clean := make([]string, len(words))
	for i, w := range words {
		clean[i] = strings.TrimSpace(textutil.Fold(w))
	}
	return clean
}

// findWindow is the contiguous-window portion of the sequence search. The
// target words must already be folded.
func findWindow(clean []string, s *Stream, position *float64) (start, end *Anchor) {
	var candidates []matchCandidate
	for i := 0; i+len(clean) <= len(s.tokens); i++ {
		matched := true
		for j, word := range clean {
			if !wordsMatch(s.folded[i+j], word) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}

		startAnchor := *s.anchor(i)
		endAnchor := *s.anchor(i + len(clean) - 1)
		if position == nil {
			return &startAnchor, &endAnchor
		}
		midpoint := (startAnchor.Token.Start + endAnchor.Token.End) / 2
		candidates = append(candidates, matchCandidate{
			start:    startAnchor,
			end:      endAnchor,
			distance: math.Abs(midpoint - *position),
		})
	}

	if len(candidates) == 0 {
		return nil, nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	best := candidates[0]
	return &best.start, &best.end
}

// scanEdges anchors the first target word by forward scan and the last by
// backward scan, independently. Tolerant of internal ASR errors but blind
// to position, so it runs only after every windowed strategy has failed.
func scanEdges(clean []string, s *Stream) (start, end *Anchor) {
	first := clean[0]
	last := clean[len(clean)-1]
	for i := range s.tokens {
		if wordsMatch(s.folded[i], first) {
			start = s.anchor(i)
			break
		}
	}
	for i := len(s.tokens) - 1; i >= 0; i-- {
		if wordsMatch(s.folded[i], last) {
			end = s.anchor(i)
			break
		}
	}
	return start, end
}
