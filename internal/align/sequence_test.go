package align

import (
	"testing"

	"lingopipe/internal/dialogue"
)

func tok(word string, start, end float64) dialogue.WordToken {
	return dialogue.WordToken{Word: word, Start: start, End: end}
}

func TestFindSequenceMatchesWindow(t *testing.T) {
	s := NewStream([]dialogue.WordToken{
		tok("good", 0.0, 0.3),
		tok("morning", 0.4, 0.9),
		tok("everyone", 1.0, 1.6),
	})

	start, end := FindSequence([]string{"good", "morning"}, s, nil)
	if start == nil || end == nil {
		t.Fatal("expected a match")
	}
	if start.Index != 0 || end.Index != 1 {
		t.Fatalf("indexes = %d..%d, want 0..1", start.Index, end.Index)
	}
	if start.Token.Start != 0.0 || end.Token.End != 0.9 {
		t.Fatalf("times = %v..%v, want 0.0..0.9", start.Token.Start, end.Token.End)
	}
}

func TestFindSequencePicksClosestToPosition(t *testing.T) {
	// "hello world" occurs twice; a hint near the second occurrence must
	// rank it ahead of the first despite stream order.
	s := NewStream([]dialogue.WordToken{
		tok("hello", 1.0, 1.3),
		tok("world", 1.4, 1.8),
		tok("again", 2.0, 2.4),
		tok("hello", 9.0, 9.3),
		tok("world", 9.4, 9.8),
	})

	position := 9.2
	start, end := FindSequence([]string{"hello", "world"}, s, &position)
	if start == nil || end == nil {
		t.Fatal("expected a match")
	}
	if start.Index != 3 || end.Index != 4 {
		t.Fatalf("indexes = %d..%d, want 3..4", start.Index, end.Index)
	}

	position = 1.2
	start, end = FindSequence([]string{"hello", "world"}, s, &position)
	if start.Index != 0 || end.Index != 1 {
		t.Fatalf("indexes = %d..%d, want 0..1", start.Index, end.Index)
	}
}

func TestFindSequenceTieBreaksByStreamOrder(t *testing.T) {
	// Two occurrences equidistant from the hint: the earlier one wins.
	s := NewStream([]dialogue.WordToken{
		tok("yes", 1.0, 2.0),
		tok("yes", 3.0, 4.0),
	})

	position := 2.5
	start, _ := FindSequence([]string{"yes"}, s, &position)
	if start == nil || start.Index != 0 {
		t.Fatalf("start = %+v, want index 0", start)
	}
}

func TestFindSequenceSubstringMatch(t *testing.T) {
	// ASR merged two words into one token; containment still matches.
	s := NewStream([]dialogue.WordToken{
		tok("goodmorning", 0.0, 0.8),
		tok("vietnam", 1.0, 1.7),
	})

	start, end := FindSequence([]string{"morning", "vietnam"}, s, nil)
	if start == nil || end == nil {
		t.Fatal("expected a substring match")
	}
	if start.Index != 0 || end.Index != 1 {
		t.Fatalf("indexes = %d..%d, want 0..1", start.Index, end.Index)
	}
}

func TestFindSequenceBoundaryFallback(t *testing.T) {
	// The middle word never made it into the ASR output; the endpoints
	// are still recoverable by scanning.
	s := NewStream([]dialogue.WordToken{
		tok("coffee", 0.0, 0.5),
		tok("um", 0.6, 0.8),
		tok("please", 1.0, 1.4),
	})

	start, end := FindSequence([]string{"coffee", "black", "please"}, s, nil)
	if start == nil || end == nil {
		t.Fatal("expected fallback anchors")
	}
	if start.Index != 0 {
		t.Fatalf("start index = %d, want 0", start.Index)
	}
	if end.Index != 2 {
		t.Fatalf("end index = %d, want 2", end.Index)
	}
}

func TestFindSequenceEmptyInputs(t *testing.T) {
	s := NewStream([]dialogue.WordToken{tok("word", 0, 1)})
	if start, end := FindSequence(nil, s, nil); start != nil || end != nil {
		t.Fatal("empty target words must not match")
	}
	if start, end := FindSequence([]string{"word"}, NewStream(nil), nil); start != nil || end != nil {
		t.Fatal("empty stream must not match")
	}
}

func TestFindSequenceNormalizedComparison(t *testing.T) {
	// Token casing and diacritic composition differ from the target; NFC
	// lowering on both sides makes them equal.
	s := NewStream([]dialogue.WordToken{
		tok("Cà", 2.8, 3.1), // decomposed "cà"
		tok("phê", 3.2, 3.4),
	})

	start, end := FindSequence([]string{"cà", "Phê"}, s, nil)
	if start == nil || end == nil {
		t.Fatal("expected normalized match")
	}
	if start.Index != 0 || end.Index != 1 {
		t.Fatalf("indexes = %d..%d, want 0..1", start.Index, end.Index)
	}
}

func TestFindSequenceMatchesDiacriticFreeTokens(t *testing.T) {
	// English recognizers drop Vietnamese diacritics, so the authored
	// "cà phê" must still meet the transcribed "ca phe".
	s := NewStream([]dialogue.WordToken{
		tok("ca", 2.6, 3.0),
		tok("phe", 3.0, 3.4),
	})

	start, end := FindSequence([]string{"cà", "phê"}, s, nil)
	if start == nil || end == nil {
		t.Fatal("expected folded match")
	}
	if start.Token.Start != 2.6 || end.Token.End != 3.4 {
		t.Fatalf("span = %v..%v, want 2.6..3.4", start.Token.Start, end.Token.End)
	}
}
