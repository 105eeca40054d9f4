// Package estimate produces the initial coarse phrase timeline for a
// dialogue from nothing but the audio duration and per-line character
// counts.
//
// The estimate has no acoustic grounding; it exists so alignment always has
// a safe fallback and a positional prior. Lines get duration proportional
// to their character share, words get duration proportional to theirs, and
// words regroup into display phrases of at most three words.
package estimate
