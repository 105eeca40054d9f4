package align

import (
	"testing"

	"lingopipe/internal/dialogue"
)

func testDocument(phrases ...dialogue.Phrase) dialogue.Document {
	return dialogue.Document{ID: "a1b2c3", Dialogue: phrases}
}

func TestAlignFullSequence(t *testing.T) {
	doc := testDocument(phrase("I love cà phê", 1.8, 3.6))
	tokens := []dialogue.WordToken{
		tok("i", 2.0, 2.2),
		tok("love", 2.3, 2.6),
		tok("cà", 2.8, 3.1),
		tok("phê", 3.2, 3.4),
	}

	got := New(nil, Options{}).Align(doc, tokens)
	if len(got.Dialogue) != 1 {
		t.Fatalf("phrase count = %d", len(got.Dialogue))
	}
	if got.Dialogue[0].StartTime != 2.0 {
		t.Fatalf("start = %v, want 2.0", got.Dialogue[0].StartTime)
	}
	if got.Dialogue[0].EndTime != 3.4 {
		t.Fatalf("end = %v, want 3.4", got.Dialogue[0].EndTime)
	}
}

func TestAlignDiacriticFreeRecognizerOutput(t *testing.T) {
	// An English ASR engine writes the Vietnamese words without their
	// diacritics; the aligned end time must come from the ASR stream.
	doc := testDocument(phrase("I love cà phê", 2.0, 4.0))
	tokens := []dialogue.WordToken{
		tok("i", 2.0, 2.2),
		tok("love", 2.2, 2.6),
		tok("ca", 2.6, 3.0),
		tok("phe", 3.0, 3.4),
	}

	got := New(nil, Options{}).Align(doc, tokens)
	if got.Dialogue[0].StartTime != 2.0 {
		t.Fatalf("start = %v, want 2.0", got.Dialogue[0].StartTime)
	}
	if got.Dialogue[0].EndTime != 3.4 {
		t.Fatalf("end = %v, want 3.4", got.Dialogue[0].EndTime)
	}
}

func TestAlignPrefersOccurrenceNearEstimate(t *testing.T) {
	// The phrase repeats later in the recording; the proportional estimate
	// steers the match to the right occurrence.
	doc := testDocument(phrase("xin chào", 10.0, 11.0))
	tokens := []dialogue.WordToken{
		tok("xin", 1.0, 1.3),
		tok("chào", 1.4, 1.8),
		tok("xin", 10.2, 10.5),
		tok("chào", 10.6, 11.0),
	}

	got := New(nil, Options{}).Align(doc, tokens)
	if got.Dialogue[0].StartTime != 10.2 {
		t.Fatalf("start = %v, want 10.2", got.Dialogue[0].StartTime)
	}
}

func TestAlignKeepsEstimateWhenUnmatched(t *testing.T) {
	doc := testDocument(phrase("completely different words", 1.0, 2.5))
	tokens := []dialogue.WordToken{
		tok("nothing", 0.0, 0.5),
		tok("matches", 0.6, 1.1),
	}

	got := New(nil, Options{}).Align(doc, tokens)
	if got.Dialogue[0].StartTime != 1.0 || got.Dialogue[0].EndTime != 2.5 {
		t.Fatalf("estimate not kept: %v..%v", got.Dialogue[0].StartTime, got.Dialogue[0].EndTime)
	}
}

func TestAlignNeverChangesText(t *testing.T) {
	text := "Tôi thích <vietnamese>cà phê</vietnamese> sữa đá"
	doc := testDocument(dialogue.Phrase{
		Speaker:   "mai",
		Text:      text,
		VietWords: []string{"cà phê"},
		StartTime: 0.5,
		EndTime:   2.5,
	})
	tokens := []dialogue.WordToken{
		tok("tôi", 0.6, 0.8),
		tok("thích", 0.9, 1.2),
	}

	got := New(nil, Options{}).Align(doc, tokens)
	if got.Dialogue[0].Text != text {
		t.Fatalf("text changed: %q", got.Dialogue[0].Text)
	}
	if doc.Dialogue[0].StartTime != 0.5 {
		t.Fatalf("input document mutated: start = %v", doc.Dialogue[0].StartTime)
	}
}

func TestAlignBoundaryWordsWhenMiddleDiffers(t *testing.T) {
	// The recognizer garbled the middle of the phrase, so the full window
	// fails but both three-word edges still anchor it.
	doc := testDocument(phrase("good morning everyone nice to meet you today friend", 0.0, 4.0))
	tokens := []dialogue.WordToken{
		tok("good", 0.2, 0.4),
		tok("morning", 0.5, 0.9),
		tok("everyone", 1.0, 1.5),
		tok("mumble", 1.6, 2.4),
		tok("meet", 2.5, 2.8),
		tok("you", 2.9, 3.0),
		tok("today", 3.1, 3.4),
		tok("friend", 3.5, 3.8),
	}

	got := New(nil, Options{}).Align(doc, tokens)
	if got.Dialogue[0].StartTime != 0.2 {
		t.Fatalf("start = %v, want 0.2", got.Dialogue[0].StartTime)
	}
	if got.Dialogue[0].EndTime != 3.8 {
		t.Fatalf("end = %v, want 3.8", got.Dialogue[0].EndTime)
	}
}

func TestAlignOrdersAndRepairsResult(t *testing.T) {
	// Matches that land the phrases overlapping are repaired afterwards.
	doc := testDocument(
		phrase("alpha beta", 0.0, 2.0),
		phrase("gamma delta", 1.5, 4.0),
	)
	tokens := []dialogue.WordToken{
		tok("alpha", 0.0, 0.8),
		tok("beta", 0.9, 2.2),
		tok("gamma", 1.8, 2.6),
		tok("delta", 2.7, 3.5),
	}

	got := New(nil, Options{}).Align(doc, tokens)
	if got.Dialogue[0].EndTime > got.Dialogue[1].StartTime {
		t.Fatalf("phrases overlap: %v > %v", got.Dialogue[0].EndTime, got.Dialogue[1].StartTime)
	}
}

func TestAlignSimpleAnchorsNonStopWords(t *testing.T) {
	doc := testDocument(phrase("the elephant ran", 4.9, 6.4))
	tokens := []dialogue.WordToken{
		tok("the", 4.7, 4.9),
		tok("elephant", 5.0, 5.4),
		tok("ran", 6.0, 6.3),
	}

	got := New(nil, Options{}).AlignSimple(doc, tokens)
	if got.Dialogue[0].StartTime != 5.0 {
		t.Fatalf("start = %v, want 5.0 (stoplist skipped)", got.Dialogue[0].StartTime)
	}
	if got.Dialogue[0].EndTime != 6.3 {
		t.Fatalf("end = %v, want 6.3", got.Dialogue[0].EndTime)
	}
}

func TestAlignSimpleAllStopWordsUsesEdges(t *testing.T) {
	// Every word is on the stoplist, so nothing anchors and the estimate
	// survives untouched.
	doc := testDocument(phrase("is it you", 1.0, 2.0))
	tokens := []dialogue.WordToken{
		tok("is", 1.0, 1.2),
		tok("it", 1.3, 1.5),
		tok("you", 1.6, 1.9),
	}

	got := New(nil, Options{}).AlignSimple(doc, tokens)
	if got.Dialogue[0].StartTime != 1.0 || got.Dialogue[0].EndTime != 2.0 {
		t.Fatalf("estimate not kept: %v..%v", got.Dialogue[0].StartTime, got.Dialogue[0].EndTime)
	}
}

func TestAlignEmptyPhraseTextIsSkipped(t *testing.T) {
	doc := testDocument(phrase("", 1.0, 2.0))
	tokens := []dialogue.WordToken{tok("word", 0.0, 0.5)}

	got := New(nil, Options{}).Align(doc, tokens)
	if got.Dialogue[0].StartTime != 1.0 || got.Dialogue[0].EndTime != 2.0 {
		t.Fatalf("empty phrase adjusted: %v..%v", got.Dialogue[0].StartTime, got.Dialogue[0].EndTime)
	}
}
