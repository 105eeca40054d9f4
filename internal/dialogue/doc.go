// Package dialogue defines the persisted data model for bilingual dialogue
// documents and their companion files.
//
// A Document is the unit of work for the whole pipeline: the proportional
// estimator creates it, the aligner rewrites its phrase times, and the
// renderer consumes it. Each dialogue ID owns a family of files in the
// audio directory:
//
//	dialogue_<id>.json                canonical (reference/aligned)
//	dialogue_<id>_auto.json           ASR-grouped document
//	dialogue_<id>_adjusted.json       alignment output before promotion
//	dialogue_<id>_original.json       pre-overwrite backup
//	dialogue_<id>_no_punctuation.json punctuation-stripped derivative
//	word_timestamps_<id>.json         raw ASR word tokens
//	word_timestamps_<id>.csv          human-readable token sidecar
//
// Alignment mutates only phrase start/end times; Text is authoritative and
// byte-identical across the family.
package dialogue
