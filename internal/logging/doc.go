// Package logging builds the zap logger shared by every gallerygen command.
//
// Log output always goes to stderr (or the writer given in Options) so it
// never mixes with the user-facing report printed on stdout.
package logging
