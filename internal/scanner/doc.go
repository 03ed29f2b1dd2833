// Package scanner finds the image files of a gallery directory.
//
// The scan is non-recursive: only regular files directly inside the
// directory are considered (symbolic links are followed). A file is an
// image when its lowercased name ends with one of the format tokens.
package scanner
