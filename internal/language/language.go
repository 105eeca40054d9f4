package language

import (
	"regexp"
	"sort"
	"strings"

	"lingopipe/internal/textutil"
)

// VietnameseDiacritics is the character class used to flag a token as
// Vietnamese when it is absent from the vocabulary.
const VietnameseDiacritics = "àáảãạăắằẳẵặâấầẩẫậèéẻẽẹêếềểễệìíỉĩịòóỏõọôốồổỗộơớờởỡợùúủũụưứừửữựỳýỷỹỵđ" +
	"ÀÁẢÃẠĂẮẰẲẴẶÂẤẦẨẪẬÈÉẺẼẸÊẾỀỂỄỆÌÍỈĨỊÒÓỎÕỌÔỐỒỔỖỘƠỚỜỞỠỢÙÚỦŨỤƯỨỪỬỮỰỲÝỶỸỴĐ"

var diacriticPattern = regexp.MustCompile("[" + VietnameseDiacritics + "]")

// commonPhrases are frequent multi-word Vietnamese units that must not be
// split across subtitle tokens even when absent from a dialogue's vocabulary.
var commonPhrases = []string{
	"bóng đá", "giấc mơ", "Sài Gòn", "trùng hợp", "cổ vũ", "đánh giá",
	"tiếng Việt", "người Việt", "Việt Nam", "phở bò", "bánh mì", "cà phê",
	"cơm tấm", "bún chả", "hủ tiếu", "bánh xèo", "chả giò", "gỏi cuốn",
}

// Vocabulary is a set of lowercased target-language vocabulary entries.
// Entries may contain spaces (multi-word phrases).
type Vocabulary map[string]struct{}

// NewVocabulary builds a vocabulary set from raw entries, lowercasing and
// dropping blanks.
func NewVocabulary(entries ...string) Vocabulary {
	vocab := make(Vocabulary, len(entries))
	for _, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		vocab[entry] = struct{}{}
	}
	return vocab
}

// Contains reports vocabulary membership for a lowercased entry.
func (v Vocabulary) Contains(entry string) bool {
	if len(v) == 0 {
		return false
	}
	_, ok := v[strings.ToLower(entry)]
	return ok
}

// MultiWord returns the multi-word entries in the vocabulary.
func (v Vocabulary) MultiWord() []string {
	var phrases []string
	for entry := range v {
		if strings.Contains(entry, " ") {
			phrases = append(phrases, entry)
		}
	}
	sort.Strings(phrases)
	return phrases
}

// IsTargetWord reports whether a word belongs to the target language,
// either by vocabulary membership after normalization or by carrying a
// Vietnamese diacritic. Empty input is never a target word.
func IsTargetWord(word string, vocab Vocabulary) bool {
	clean := strings.TrimSpace(textutil.Normalize(word))
	if clean == "" {
		return false
	}
	if vocab.Contains(clean) {
		return true
	}
	return diacriticPattern.MatchString(word)
}

// ExtractPhrases returns the Vietnamese phrases present in text: known
// multi-word phrases first, then single diacritic or vocabulary words that
// are not already covered by a matched phrase.
func ExtractPhrases(text string, vocab Vocabulary) []string {
	candidates := make([]string, 0, len(commonPhrases))
	candidates = append(candidates, commonPhrases...)
	for _, entry := range vocab.MultiWord() {
		if !containsFold(candidates, entry) {
			candidates = append(candidates, entry)
		}
	}

	var found []string
	for _, phrase := range candidates {
		if strings.Contains(text, phrase) {
			found = append(found, phrase)
		}
	}

	for _, word := range textutil.Words(text) {
		if !IsTargetWord(word, vocab) {
			continue
		}
		inPhrase := false
		for _, phrase := range found {
			for _, part := range strings.Fields(phrase) {
				if part == word {
					inPhrase = true
					break
				}
			}
			if inPhrase {
				break
			}
		}
		if !inPhrase {
			found = append(found, word)
		}
	}
	return found
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
