// Package workflow drives the processing pipeline over dialogue audio.
//
// The Processor chains the stages for one audio file: proportional
// timestamp estimation from the authored script, speech recognition,
// speaker assignment, phrase grouping, and timestamp alignment. Batch runs
// take a workspace lock so concurrent invocations cannot trample each
// other's output files, and every run is recorded in the journal when one
// is attached.
//
// Failures on one file never abort a batch; the file is skipped and the
// error reported at the end.
package workflow
