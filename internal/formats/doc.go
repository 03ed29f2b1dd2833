// Package formats loads the list of recognized image extensions from the
// settings file (settings.txt) in the gallery directory.
//
// The file is plain text with one extension per line. Tokens are matched
// case-insensitively and may carry a leading dot; blank lines are ignored.
// When the file is missing the caller bootstraps it with WriteDefault and
// stops the run so the user can review it.
package formats
