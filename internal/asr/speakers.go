package asr

import (
	"lingopipe/internal/dialogue"
)

// UnknownSpeaker labels tokens whose midpoint falls outside every
// proportionally-computed line window.
const UnknownSpeaker = "Unknown"

// AssignSpeakers labels each token with the speaker whose proportional line
// window contains the token's midpoint. Windows are computed by splitting
// the recognized span (last token's end time) across script lines by
// character share. Returns a new slice; the input is not modified.
func AssignSpeakers(tokens []dialogue.WordToken, script dialogue.Script) []dialogue.WordToken {
	out := append([]dialogue.WordToken(nil), tokens...)
	if len(out) == 0 || len(script.EnglishDialogue) == 0 {
		return out
	}

	totalDuration := out[len(out)-1].End
	totalChars := 0
	for _, line := range script.EnglishDialogue {
		totalChars += len(line.Text)
	}

	type window struct {
		speaker    string
		start, end float64
	}
	windows := make([]window, 0, len(script.EnglishDialogue))
	current := 0.0
	for _, line := range script.EnglishDialogue {
		duration := 0.0
		if totalChars > 0 {
			duration = float64(len(line.Text)) / float64(totalChars) * totalDuration
		}
		windows = append(windows, window{speaker: line.Speaker, start: current, end: current + duration})
		current += duration
	}

	for i := range out {
		mid := out[i].Midpoint()
		out[i].Speaker = UnknownSpeaker
		for _, w := range windows {
			if w.start <= mid && mid <= w.end {
				out[i].Speaker = w.speaker
				break
			}
		}
	}
	return out
}
