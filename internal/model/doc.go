// Package model defines the domain types and value objects for the
// gallerygen CLI.
//
// This package contains pure data structures with no external dependencies.
// The format list, the scanned image list and the run result are transient
// values computed fresh on every run; the only persistent state is the
// settings file and the generated artifacts, which live on disk.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
