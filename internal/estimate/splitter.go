package estimate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"lingopipe/internal/language"
)

// Unit is one atomic piece of a dialogue line: a plain word, a punctuation
// mark, or a protected target-language span that must not be broken apart.
type Unit struct {
	Text        string
	VietWords   []string
	Punctuation bool
}

var (
	markupPattern = regexp.MustCompile(`<vietnamese>([^<]+)</vietnamese>`)
	tokenPattern  = regexp.MustCompile(`[a-zA-Z0-9'-]+|[.,!?;:]`)
)

// SplitLine breaks a dialogue line into units for timing. Inline
// <vietnamese> markup spans stay atomic with their full tag text, and
// multi-word vocabulary phrases stay atomic chosen longest-first. Trailing
// punctuation becomes its own unit.
func SplitLine(text string, vocab language.Vocabulary) []Unit {
	protected := map[string]Unit{}

	// Markup spans first: they may contain anything, including phrases the
	// vocabulary pass would otherwise split differently.
	working := markupPattern.ReplaceAllStringFunc(text, func(tag string) string {
		inner := markupPattern.FindStringSubmatch(tag)[1]
		placeholder := fmt.Sprintf("\x00tag%d\x00", len(protected))
		protected[placeholder] = Unit{Text: tag, VietWords: []string{inner}}
		return " " + placeholder + " "
	})

	phrases := language.ExtractPhrases(working, vocab)
	sort.Slice(phrases, func(i, j int) bool { return len(phrases[i]) > len(phrases[j]) })
	for _, phrase := range phrases {
		if !strings.Contains(working, phrase) {
			continue
		}
		placeholder := fmt.Sprintf("\x00viet%d\x00", len(protected))
		protected[placeholder] = Unit{Text: phrase, VietWords: []string{phrase}}
		working = strings.ReplaceAll(working, phrase, " "+placeholder+" ")
	}

	var units []Unit
	for _, part := range strings.Fields(working) {
		if unit, ok := protected[part]; ok {
			units = append(units, unit)
			continue
		}
		pieces := tokenPattern.FindAllString(part, -1)
		if len(pieces) == 0 {
			units = append(units, Unit{Text: part})
			continue
		}
		for _, piece := range pieces {
			units = append(units, Unit{
				Text:        piece,
				Punctuation: isPunctMark(piece),
			})
		}
	}
	return units
}

func isPunctMark(token string) bool {
	switch token {
	case ".", ",", "!", "?", ";", ":":
		return true
	}
	return false
}
