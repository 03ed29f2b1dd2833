// Package watcher re-runs gallery generation when the gallery directory
// changes.
//
// It watches a single directory (no recursion) with fsnotify and groups
// bursts of events, such as copying a batch of photos, into one run after
// a quiet period. Events on ignored names, typically the artifacts the
// handler itself writes, never trigger a run. Handler calls are serialized.
package watcher
