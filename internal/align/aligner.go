package align

import (
	"io"
	"log/slog"

	"lingopipe/internal/dialogue"
	"lingopipe/internal/textutil"
)

const (
	// boundaryWindow is how many words from a phrase edge the boundary
	// strategy tries to match.
	boundaryWindow = 3
	// transitionWindow is how many words each side contributes to a
	// cross-phrase transition sequence.
	transitionWindow = 2
)

// Options tunes the aligner. Zero values select the defaults.
type Options struct {
	Tolerance float64
	StopWords []string
}

// Aligner rewrites phrase boundary times using the ASR token stream.
type Aligner struct {
	logger    *slog.Logger
	tolerance float64
	stop      stopSet
}

// New constructs an Aligner. A nil logger discards diagnostics.
func New(logger *slog.Logger, opts Options) *Aligner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	tolerance := opts.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	stopWords := opts.StopWords
	if stopWords == nil {
		stopWords = DefaultStopWords
	}
	return &Aligner{
		logger:    logger,
		tolerance: tolerance,
		stop:      newStopSet(stopWords),
	}
}

// phraseContext carries everything a strategy needs to resolve one phrase's
// endpoints: the phrase words, its neighbors, and the shared token stream.
type phraseContext struct {
	words  []string
	phrase dialogue.Phrase
	prev   *dialogue.Phrase
	next   *dialogue.Phrase
	stream *Stream
}

// strategy attempts to resolve a phrase's endpoints. Either anchor may be
// nil; the chain keeps running for whichever endpoint is still missing.
type strategy func(pc *phraseContext) (start, end *Anchor)

// Align returns a copy of doc whose phrase times are rewritten from the
// ASR stream where a confident match exists; unresolved endpoints keep
// their proportional estimate. Text is never altered; a final guard
// restores it should any internal step misbehave.
func (a *Aligner) Align(doc dialogue.Document, tokens []dialogue.WordToken) dialogue.Document {
	out := doc.Clone()
	s := NewStream(tokens)

	strategies := []strategy{
		a.fullSequence,
		a.boundaryWords,
		a.crossPhraseTransition,
		a.edgeScan,
	}

	for i := range out.Dialogue {
		pc := &phraseContext{
			words:  textutil.Words(out.Dialogue[i].Text),
			phrase: out.Dialogue[i],
			stream: s,
		}
		if i > 0 {
			pc.prev = &out.Dialogue[i-1]
		}
		if i < len(out.Dialogue)-1 {
			pc.next = &out.Dialogue[i+1]
		}
		if len(pc.words) == 0 {
			continue
		}

		var start, end *Anchor
		for _, strat := range strategies {
			if start != nil && end != nil {
				break
			}
			gotStart, gotEnd := strat(pc)
			if start == nil {
				start = gotStart
			}
			if end == nil {
				end = gotEnd
			}
		}

		if start != nil {
			out.Dialogue[i].StartTime = dialogue.Round2(start.Token.Start)
		}
		if end != nil {
			out.Dialogue[i].EndTime = dialogue.Round2(end.Token.End)
		}
		if start == nil && end == nil {
			a.logger.Debug("phrase kept proportional estimate",
				"index", i, "text", out.Dialogue[i].Text)
		}
	}

	a.restoreText(&out, doc)
	out.Dialogue = Validate(out.Dialogue)
	return out
}

// AlignSimple anchors each phrase with only its first and last non-stoplist
// words via time-windowed lookup. Cheaper than the full strategy chain and
// good enough for batch processing.
func (a *Aligner) AlignSimple(doc dialogue.Document, tokens []dialogue.WordToken) dialogue.Document {
	out := doc.Clone()
	s := NewStream(tokens)

	for i := range out.Dialogue {
		phrase := out.Dialogue[i]
		words := textutil.Words(phrase.Text)
		if len(words) == 0 {
			continue
		}

		first, last := a.anchorWords(words)

		if anchor := FindWordByTime(first, s, phrase.StartTime, a.tolerance, a.stop); anchor != nil {
			out.Dialogue[i].StartTime = dialogue.Round2(anchor.Token.Start)
		}
		if anchor := FindWordByTime(last, s, phrase.EndTime, a.tolerance, a.stop); anchor != nil {
			out.Dialogue[i].EndTime = dialogue.Round2(anchor.Token.End)
		}
	}

	a.restoreText(&out, doc)
	out.Dialogue = Validate(out.Dialogue)
	return out
}

// anchorWords picks the first and last non-stoplist words of a phrase,
// falling back to the literal edges when every word is a stop word.
func (a *Aligner) anchorWords(words []string) (first, last string) {
	firstIdx := 0
	for firstIdx < len(words) && a.stop.contains(textutil.Fold(words[firstIdx])) {
		firstIdx++
	}
	lastIdx := len(words) - 1
	for lastIdx >= 0 && a.stop.contains(textutil.Fold(words[lastIdx])) {
		lastIdx--
	}
	if firstIdx >= len(words) || lastIdx < 0 {
		return words[0], words[len(words)-1]
	}
	return words[firstIdx], words[lastIdx]
}

// fullSequence matches the phrase's whole word list near its estimated
// midpoint.
func (a *Aligner) fullSequence(pc *phraseContext) (*Anchor, *Anchor) {
	midpoint := (pc.phrase.StartTime + pc.phrase.EndTime) / 2
	return findWindow(foldWords(pc.words), pc.stream, &midpoint)
}

// boundaryWords matches the phrase's leading words near its start and its
// trailing words near its end, each endpoint independently.
func (a *Aligner) boundaryWords(pc *phraseContext) (*Anchor, *Anchor) {
	clean := foldWords(pc.words)
	n := min(boundaryWindow, len(clean))

	startPos := pc.phrase.StartTime
	start, _ := findWindow(clean[:n], pc.stream, &startPos)

	endPos := pc.phrase.EndTime
	_, end := findWindow(clean[len(clean)-n:], pc.stream, &endPos)

	return start, end
}

// crossPhraseTransition matches across the boundary with a neighbor phrase
// and then discards the neighbor's words by shifting the matched stream
// index, so the anchor lands on this phrase's own words.
func (a *Aligner) crossPhraseTransition(pc *phraseContext) (*Anchor, *Anchor) {
	var start, end *Anchor

	if pc.prev != nil {
		prevWords := textutil.Words(pc.prev.Text)
		if len(prevWords) > 0 {
			tail := min(transitionWindow, len(prevWords))
			head := min(transitionWindow, len(pc.words))
			transition := append(append([]string{}, prevWords[len(prevWords)-tail:]...), pc.words[:head]...)
			if matched, _ := findWindow(foldWords(transition), pc.stream, nil); matched != nil {
				idx := matched.Index + tail
				if idx < len(pc.stream.tokens) {
					start = pc.stream.anchor(idx)
				}
			}
		}
	}

	if pc.next != nil {
		nextWords := textutil.Words(pc.next.Text)
		if len(nextWords) > 0 {
			tail := min(transitionWindow, len(pc.words))
			head := min(transitionWindow, len(nextWords))
			transition := append(append([]string{}, pc.words[len(pc.words)-tail:]...), nextWords[:head]...)
			if _, matched := findWindow(foldWords(transition), pc.stream, nil); matched != nil {
				idx := matched.Index - head
				if idx >= 0 {
					end = pc.stream.anchor(idx)
				}
			}
		}
	}

	return start, end
}

// edgeScan is the last resort: forward scan for the first word, backward
// scan for the last. Positionless, so it only runs once every windowed
// strategy has given up on an endpoint.
func (a *Aligner) edgeScan(pc *phraseContext) (*Anchor, *Anchor) {
	return scanEdges(foldWords(pc.words), pc.stream)
}

// restoreText enforces the transcript immutability contract after all
// matching: any divergence is a bug upstream, repaired here and logged.
func (a *Aligner) restoreText(out *dialogue.Document, original dialogue.Document) {
	for i := range out.Dialogue {
		if i < len(original.Dialogue) && out.Dialogue[i].Text != original.Dialogue[i].Text {
			a.logger.Warn("phrase text mutated during alignment; restoring",
				"index", i)
			out.Dialogue[i].Text = original.Dialogue[i].Text
		}
	}
}
