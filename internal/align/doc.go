// Package align reconciles three timing sources for a dialogue: the
// proportional estimate, the ASR word-timestamp stream, and the authored
// reference transcript whose phrase boundaries need accurate times.
//
// The package is pure computation over in-memory slices. Matching favors
// precision over recall throughout: an ambiguous candidate is treated as no
// match, because the proportional estimate is always a safe fallback while
// a wrong anchor drags a subtitle onto the wrong speech.
package align
