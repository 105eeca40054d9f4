package align

import (
	"testing"

	"lingopipe/internal/dialogue"
)

func TestFindWordByTimeStoplistAlwaysNil(t *testing.T) {
	s := NewStream([]dialogue.WordToken{
		tok("the", 1.0, 1.2),
	})
	stop := newStopSet(DefaultStopWords)

	if got := FindWordByTime("the", s, 1.1, DefaultTolerance, stop); got != nil {
		t.Fatalf("stoplist word matched: %+v", got)
	}
	// Even a perfect unique hit must be rejected for stop words.
	if got := FindWordByTime("The", s, 1.1, DefaultTolerance, stop); got != nil {
		t.Fatalf("stoplist rejection must survive normalization: %+v", got)
	}
}

func TestFindWordByTimeSingleCandidate(t *testing.T) {
	s := NewStream([]dialogue.WordToken{
		tok("hello", 0.0, 0.4),
		tok("coffee", 2.0, 2.5),
		tok("bye", 5.0, 5.3),
	})
	stop := newStopSet(DefaultStopWords)

	got := FindWordByTime("coffee", s, 2.3, DefaultTolerance, stop)
	if got == nil {
		t.Fatal("expected a match")
	}
	if got.Index != 1 {
		t.Fatalf("index = %d, want 1", got.Index)
	}
}

func TestFindWordByTimeAmbiguousReturnsNil(t *testing.T) {
	// Two in-window occurrences whose distances differ by less than the
	// ambiguity margin: refuse to guess.
	s := NewStream([]dialogue.WordToken{
		tok("okay", 1.0, 1.2), // midpoint 1.1
		tok("okay", 1.4, 1.6), // midpoint 1.5
	})
	stop := newStopSet(DefaultStopWords)

	if got := FindWordByTime("okay", s, 1.3, DefaultTolerance, stop); got != nil {
		t.Fatalf("ambiguous match accepted: %+v", got)
	}
}

func TestFindWordByTimeClearWinnerWithinMargin(t *testing.T) {
	s := NewStream([]dialogue.WordToken{
		tok("okay", 1.0, 1.2), // midpoint 1.1, distance 0.1
		tok("okay", 2.0, 2.4), // midpoint 2.2, distance 1.2
	})
	stop := newStopSet(DefaultStopWords)

	got := FindWordByTime("okay", s, 1.2, DefaultTolerance, stop)
	if got == nil {
		t.Fatal("expected the clearly closer occurrence to win")
	}
	if got.Index != 0 {
		t.Fatalf("index = %d, want 0", got.Index)
	}
}

func TestFindWordByTimeGlobalUniqueFallback(t *testing.T) {
	// "elephant" sits far outside the tolerance window but occurs exactly
	// once in the whole stream, so it is unambiguous.
	s := NewStream([]dialogue.WordToken{
		tok("hello", 0.0, 0.3),
		tok("elephant", 30.0, 30.8),
	})
	stop := newStopSet(DefaultStopWords)

	got := FindWordByTime("elephant", s, 1.0, DefaultTolerance, stop)
	if got == nil {
		t.Fatal("expected global unique fallback to fire")
	}
	if got.Index != 1 {
		t.Fatalf("index = %d, want 1", got.Index)
	}
}

func TestFindWordByTimeGlobalFallbackRequiresUniqueness(t *testing.T) {
	s := NewStream([]dialogue.WordToken{
		tok("elephant", 30.0, 30.8),
		tok("elephant", 60.0, 60.8),
	})
	stop := newStopSet(DefaultStopWords)

	if got := FindWordByTime("elephant", s, 1.0, DefaultTolerance, stop); got != nil {
		t.Fatalf("duplicated out-of-window word matched: %+v", got)
	}
}

func TestFindWordByTimeEmptyWord(t *testing.T) {
	s := NewStream([]dialogue.WordToken{tok("word", 0, 1)})
	stop := newStopSet(DefaultStopWords)

	if got := FindWordByTime("...", s, 0.5, DefaultTolerance, stop); got != nil {
		t.Fatalf("punctuation-only word matched: %+v", got)
	}
}
