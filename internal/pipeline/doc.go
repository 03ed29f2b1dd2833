// Package pipeline runs one gallery generation pass over a directory.
//
// The run moves through fixed states:
//
//	LOAD_FORMATS → SCAN → RENDER → RESTRICT → done (generated)
//	LOAD_FORMATS → done (bootstrapped: settings.txt was missing and has been created)
//	LOAD_FORMATS → SCAN → done (no-images: nothing matched, nothing written)
//
// The handled outcomes are reported through model.Result, never as
// errors. Errors mean an unexpected failure (usually I/O); artifacts
// written before the failure are left in place.
//
// Runner never prints and never waits for input; the CLI layer turns the
// result into messages and applies the exit acknowledgment.
package pipeline
