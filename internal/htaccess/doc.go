// Package htaccess writes the Apache access-control file for a gallery
// directory. The file disables directory listings and denies direct
// requests for the image extensions and the settings file, so visitors
// only reach the images through the gallery pages.
//
// The content is plain string formatting; no server grammar is validated
// and nothing checks that the hosting server honors it.
package htaccess
