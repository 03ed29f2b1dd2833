// Package gallery renders the two static HTML gallery documents.
//
// Both documents come from one template: a head with inline styling for
// the tile grid and the lightbox overlay, one tile per image, and a foot
// with the inline click-to-enlarge script. The captioned variant adds the
// filename under each image. Filenames are written verbatim, without HTML
// escaping, since they come from a local directory listing.
package gallery
