package align

import (
	"sort"

	"lingopipe/internal/dialogue"
)

// minPhraseSpan is the repaired span for a phrase whose interval collapses.
const minPhraseSpan = 0.5

// Validate restores the timeline invariants over a phrase sequence: sorted
// by start time, every start strictly before its end, and no overlap
// between consecutive phrases. The repair is a single forward pass and is
// idempotent. The input slice is not modified.
func Validate(phrases []dialogue.Phrase) []dialogue.Phrase {
	out := make([]dialogue.Phrase, len(phrases))
	for i, p := range phrases {
		out[i] = p.Clone()
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})

	for i := range out {
		if out[i].StartTime >= out[i].EndTime {
			if i == 0 {
				out[i].StartTime = 0
			} else {
				out[i].StartTime = out[i-1].EndTime
			}
			if out[i].StartTime >= out[i].EndTime {
				out[i].EndTime = out[i].StartTime + minPhraseSpan
			}
		}
		if i < len(out)-1 && out[i].EndTime > out[i+1].StartTime {
			out[i].EndTime = out[i+1].StartTime
		}
	}
	return out
}
