// Package punct strips sentence punctuation from dialogue text while
// preserving markup tags and parenthetical asides, producing the cleaner
// variant used for on-screen subtitles.
package punct

import (
	"fmt"
	"regexp"
	"strings"

	"lingopipe/internal/dialogue"
)

var (
	tagPattern    = regexp.MustCompile(`<[^>]+>`)
	parenPattern  = regexp.MustCompile(`\([^)]+\)`)
	strippable    = regexp.MustCompile(`[.,!?;:"\[\]{}]`)
	markupPattern = regexp.MustCompile(`<vietnamese>[^<]+</vietnamese>`)
)

// StripText removes punctuation from text. Content inside <vietnamese>
// tags, other angle-bracket tags, and parenthetical expressions survives
// untouched, including any punctuation it contains.
func StripText(text string) string {
	protected := map[string]string{}
	working := text

	protect := func(pattern *regexp.Regexp, label string) {
		matches := pattern.FindAllString(working, -1)
		for i, m := range matches {
			placeholder := fmt.Sprintf("\x00%s%d\x00", label, i)
			protected[placeholder] = m
			working = strings.Replace(working, m, placeholder, 1)
		}
	}

	protect(markupPattern, "viet")
	protect(tagPattern, "tag")
	protect(parenPattern, "paren")

	working = strippable.ReplaceAllString(working, "")

	for placeholder, original := range protected {
		working = strings.Replace(working, placeholder, original, 1)
	}
	return working
}

// StripDocument returns a copy of doc with punctuation removed from every
// phrase text, and reports whether anything actually changed.
func StripDocument(doc dialogue.Document) (dialogue.Document, bool) {
	out := doc.Clone()
	modified := false
	for i := range out.Dialogue {
		cleaned := StripText(out.Dialogue[i].Text)
		if cleaned != out.Dialogue[i].Text {
			out.Dialogue[i].Text = cleaned
			modified = true
		}
	}
	return out, modified
}
