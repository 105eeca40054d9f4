package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// wordPattern matches a single run of word characters. Unicode letters and
// digits count as word characters so diacritic-bearing tokens survive intact.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Normalize prepares a word for comparison: NFC-compose, lowercase, and
// drop every rune that is not a word character or whitespace. ASR engines
// and text editors disagree about combining characters, so composing first
// keeps "cà" equal to "cà" regardless of source.
func Normalize(word string) string {
	if word == "" {
		return ""
	}
	composed := norm.NFC.String(word)
	lowered := strings.ToLower(composed)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Fold returns the comparison form used when matching authored text
// against ASR output: Normalize, then decompose and drop combining marks.
// An English recognizer transcribes "cà phê" as "ca phe"; folding both
// sides lets the two meet.
func Fold(word string) string {
	normalized := Normalize(word)
	if normalized == "" {
		return ""
	}
	decomposed := norm.NFD.String(normalized)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Words extracts the word tokens from text in order, skipping punctuation
// and markup delimiters.
func Words(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// IsPunctuation reports whether the token is a bare punctuation mark.
func IsPunctuation(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// SentenceEnd reports whether the token terminates a spoken sentence for
// subtitle grouping purposes.
func SentenceEnd(token string) bool {
	switch token {
	case ".", "!", "?", ";":
		return true
	}
	return false
}
