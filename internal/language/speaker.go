package language

import (
	"strings"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"
)

var titleCaser = cases.Title(xlang.English)

// SpeakerDisplayName normalizes a speaker label for human-facing output.
// Returns "Unknown" for empty input.
func SpeakerDisplayName(speaker string) string {
	speaker = strings.TrimSpace(speaker)
	if speaker == "" {
		return "Unknown"
	}
	return titleCaser.String(strings.ToLower(speaker))
}
