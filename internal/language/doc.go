// Package language detects target-language (Vietnamese) tokens inside
// otherwise-English dialogue text.
//
// Detection has two signals: membership in the per-dialogue vocabulary
// (topic word plus common words) and the Vietnamese diacritic character
// class. Multi-word vocabulary entries are matched longest-first so that
// "cà phê" is kept as one unit rather than two stray words.
package language
