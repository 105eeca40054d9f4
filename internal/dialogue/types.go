package dialogue

// WordToken is a single recognized word with timing from the ASR engine.
// Start/End ordering is not guaranteed by the producer; consumers must
// tolerate degenerate intervals at stream boundaries.
type WordToken struct {
	Word    string  `json:"word"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker,omitempty"`
}

// Midpoint returns the temporal midpoint of the token.
func (t WordToken) Midpoint() float64 {
	return (t.Start + t.End) / 2
}

// Phrase is one displayable subtitle unit: a few words from one speaker
// with a start/end time. Text is authoritative and never mutated by
// alignment.
type Phrase struct {
	Speaker        string      `json:"speaker"`
	Text           string      `json:"text"`
	VietWords      []string    `json:"viet_words,omitempty"`
	StartTime      float64     `json:"start_time"`
	EndTime        float64     `json:"end_time"`
	WordTimestamps []WordToken `json:"word_timestamps,omitempty"`
}

// CommonWord pairs a vocabulary word with its translation.
type CommonWord struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

// Document is a timestamped dialogue ready for subtitle rendering.
type Document struct {
	ID                   string       `json:"id"`
	TopicWord            string       `json:"topic_word"`
	TopicWordTranslation string       `json:"topic_word_translation"`
	CommonWords          []CommonWord `json:"common_words"`
	Dialogue             []Phrase     `json:"dialogue"`
}

// ScriptLine is one speaker turn of the generated dialogue script.
type ScriptLine struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Script is the generator-facing dialogue document, before any timing
// exists. EnglishDialogue is the narration text with inline target-language
// markup.
type Script struct {
	ID                   string       `json:"id"`
	TopicWord            string       `json:"topic_word"`
	TopicWordTranslation string       `json:"topic_word_translation"`
	CommonWords          []CommonWord `json:"common_words"`
	EnglishDialogue      []ScriptLine `json:"english_dialogue"`
}

// Clone returns a deep copy of the document. Aligners work on clones so the
// caller's document is never mutated.
func (d Document) Clone() Document {
	out := d
	out.CommonWords = append([]CommonWord(nil), d.CommonWords...)
	out.Dialogue = make([]Phrase, len(d.Dialogue))
	for i, p := range d.Dialogue {
		out.Dialogue[i] = p.Clone()
	}
	return out
}

// Clone returns a deep copy of the phrase.
func (p Phrase) Clone() Phrase {
	out := p
	out.VietWords = append([]string(nil), p.VietWords...)
	out.WordTimestamps = append([]WordToken(nil), p.WordTimestamps...)
	return out
}
