package model

import (
	"fmt"
	"strings"
)

// Fixed artifact names. They are part of the tool's external contract:
// web servers and users rely on them, so they are not configurable.
const (
	// SettingsFileName is the flat text file holding one extension per line.
	SettingsFileName = "settings.txt"

	// CaptionedGalleryFileName is the gallery document that shows filenames.
	CaptionedGalleryFileName = "index.html"

	// PlainGalleryFileName is the gallery document without captions.
	PlainGalleryFileName = "index2.html"

	// RestrictionFileName is the web-server access-control file.
	RestrictionFileName = ".htaccess"
)

// Artifacts returns the names of every file a successful run writes.
// The watcher uses it to ignore events caused by its own output.
func Artifacts() []string {
	return []string{CaptionedGalleryFileName, PlainGalleryFileName, RestrictionFileName}
}

// Formats is the ordered list of recognized extension tokens.
// Tokens are lowercase and carry no leading dot. Duplicates are kept.
type Formats []string

// String renders the list the way it appears in log output: "svg,png,jpg".
func (f Formats) String() string {
	return strings.Join(f, ",")
}

// RunStatus represents the terminal state reached by one pipeline run.
// The state transitions are:
//
//	LOAD_FORMATS → [bootstrapped]
//	LOAD_FORMATS → SCAN → [no-images]
//	LOAD_FORMATS → SCAN → RENDER → RESTRICT → [generated]
type RunStatus string

const (
	// StatusBootstrapped indicates the settings file was missing and a
	// default one has been written. Nothing else happened.
	StatusBootstrapped RunStatus = "bootstrapped"

	// StatusNoImages indicates no file in the directory matched the formats.
	// No artifact was created or modified.
	StatusNoImages RunStatus = "no-images"

	// StatusGenerated indicates both gallery documents and the restriction
	// file have been written.
	StatusGenerated RunStatus = "generated"
)

// String returns the string representation of RunStatus.
func (s RunStatus) String() string {
	return string(s)
}

// Result is the structured outcome of one pipeline run. The presentation
// layer turns it into user-facing messages; the pipeline itself never
// prints or waits for input.
type Result struct {
	// Status is the terminal state the run reached.
	Status RunStatus `json:"status"`

	// Dir is the directory the run operated on.
	Dir string `json:"dir"`

	// Formats is the format list in effect. Empty when bootstrapped.
	Formats Formats `json:"formats,omitempty"`

	// Images holds the matched filenames in ascending order.
	Images []string `json:"images,omitempty"`

	// Written lists the paths of every file the run created or overwrote,
	// in write order.
	Written []string `json:"written,omitempty"`
}

// ImageCount returns the number of images the run processed.
func (r *Result) ImageCount() int {
	return len(r.Images)
}

// ExitCode defines standard CLI exit codes.
type ExitCode int

const (
	// ExitSuccess indicates the command completed. Every handled terminal
	// state (bootstrapped, no-images, generated) exits with this code.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unexpected failure, typically I/O.
	ExitGeneralError ExitCode = 1

	// ExitSettingsNotFound indicates settings.txt is missing for a command
	// that does not bootstrap it (list).
	ExitSettingsNotFound ExitCode = 2

	// ExitUserCancelled indicates the command refused to continue, for
	// example init without --force over an existing file.
	ExitUserCancelled ExitCode = 7
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
