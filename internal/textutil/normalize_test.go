package textutil

import (
	"reflect"
	"testing"
)

func TestNormalizeStripsPunctuationAndCase(t *testing.T) {
	cases := map[string]string{
		"Hello!":    "hello",
		"don't":     "dont",
		"  Cà phê.": "  cà phê",
		"":          "",
		"?!":        "",
	}
	for input, want := range cases {
		if got := Normalize(input); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Hello, World!", "cà phê", "bánh mì?", "x-y_z", "ĐÁNH GIÁ"}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q vs %q", input, once, twice)
		}
	}
}

func TestFoldDropsDiacritics(t *testing.T) {
	cases := map[string]string{
		"phê":   "phe",
		"Cà":    "ca",
		"chào!": "chao",
		"hello": "hello",
		"bánh":  "banh",
		"":      "",
	}
	for input, want := range cases {
		if got := Fold(input); got != want {
			t.Errorf("Fold(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFoldIdempotent(t *testing.T) {
	inputs := []string{"cà phê", "Hello, World!", "bánh mì?"}
	for _, input := range inputs {
		once := Fold(input)
		twice := Fold(once)
		if once != twice {
			t.Errorf("Fold not idempotent for %q: %q vs %q", input, once, twice)
		}
	}
}

func TestNormalizeComposesCombiningMarks(t *testing.T) {
	// "cà" written with a combining grave accent vs the precomposed rune.
	decomposed := "cà"
	precomposed := "cà"
	if Normalize(decomposed) != Normalize(precomposed) {
		t.Errorf("decomposed and precomposed forms normalize differently: %q vs %q",
			Normalize(decomposed), Normalize(precomposed))
	}
}

func TestWords(t *testing.T) {
	got := Words("I love cà phê, don't you?")
	want := []string{"I", "love", "cà", "phê", "don", "t", "you"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words = %v, want %v", got, want)
	}
}

func TestWordsEmpty(t *testing.T) {
	if got := Words("?! ..."); got != nil {
		t.Errorf("expected nil for punctuation-only text, got %v", got)
	}
}

func TestIsPunctuation(t *testing.T) {
	if !IsPunctuation(".") || !IsPunctuation("?!") {
		t.Error("expected punctuation tokens to be detected")
	}
	if IsPunctuation("a.") || IsPunctuation("") {
		t.Error("expected non-punctuation tokens to be rejected")
	}
}

func TestSentenceEnd(t *testing.T) {
	for _, tok := range []string{".", "!", "?", ";"} {
		if !SentenceEnd(tok) {
			t.Errorf("expected %q to end a sentence", tok)
		}
	}
	if SentenceEnd(",") || SentenceEnd(":") {
		t.Error("comma and colon should not end a sentence")
	}
}

func TestSanitizeToken(t *testing.T) {
	if got := SanitizeToken("Cà Phê"); got != "ca_phe" {
		t.Errorf("SanitizeToken = %q, want %q", got, "ca_phe")
	}
	if got := SanitizeToken(""); got != "unknown" {
		t.Errorf("SanitizeToken empty = %q, want unknown", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	if got := SanitizeFileName("a/b:c*d?"); got != "a-b-c-d" {
		t.Errorf("SanitizeFileName = %q", got)
	}
}
