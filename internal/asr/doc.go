// Package asr wraps the external speech recognizer and the heuristics
// layered on its output: proportional speaker assignment and grouping of
// word tokens into ASR-sided phrases.
//
// The recognizer itself is a subprocess collaborator. It consumes 16kHz
// mono PCM audio and emits word-level JSON; everything acoustic stays
// outside this process. A custom command runner can be injected for tests.
package asr
