package language

import (
	"reflect"
	"testing"
)

func TestIsTargetWordByVocabulary(t *testing.T) {
	vocab := NewVocabulary("xin chào", "pho", "Cam on")
	if !IsTargetWord("Pho!", vocab) {
		t.Error("expected vocabulary word to match after normalization")
	}
	if IsTargetWord("hello", vocab) {
		t.Error("plain English word should not match")
	}
}

func TestIsTargetWordByDiacritic(t *testing.T) {
	for _, word := range []string{"phở", "cà", "Đà", "việt"} {
		if !IsTargetWord(word, nil) {
			t.Errorf("expected diacritic word %q to be detected", word)
		}
	}
	if IsTargetWord("coffee", nil) {
		t.Error("ASCII word should not be detected")
	}
}

func TestIsTargetWordEmpty(t *testing.T) {
	if IsTargetWord("", nil) || IsTargetWord("?!", nil) {
		t.Error("empty or punctuation-only input must return false")
	}
}

func TestExtractPhrasesPrefersMultiWord(t *testing.T) {
	vocab := NewVocabulary("cà phê")
	got := ExtractPhrases("I love cà phê in the morning", vocab)
	want := []string{"cà phê"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractPhrases = %v, want %v", got, want)
	}
}

func TestExtractPhrasesSingleWords(t *testing.T) {
	got := ExtractPhrases("the word đẹp means beautiful", nil)
	want := []string{"đẹp"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractPhrases = %v, want %v", got, want)
	}
}

func TestExtractPhrasesVocabularyPhrases(t *testing.T) {
	vocab := NewVocabulary("xin chào")
	got := ExtractPhrases("she said xin chào to everyone", vocab)
	want := []string{"xin chào"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractPhrases = %v, want %v", got, want)
	}
}

func TestSpeakerDisplayName(t *testing.T) {
	if got := SpeakerDisplayName("mira"); got != "Mira" {
		t.Errorf("SpeakerDisplayName = %q", got)
	}
	if got := SpeakerDisplayName("  "); got != "Unknown" {
		t.Errorf("SpeakerDisplayName blank = %q", got)
	}
}
