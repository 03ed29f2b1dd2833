package gallery

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/shinji-kodama/gallerygen/internal/model"
)

// Variant describes one generated gallery document.
type Variant struct {
	// FileName is the fixed output name inside the gallery directory.
	FileName string

	// Title is the HTML document title.
	Title string

	// Captions adds the filename under each image when true.
	Captions bool
}

// Variants lists the documents written by Write, in write order.
var Variants = []Variant{
	{FileName: model.CaptionedGalleryFileName, Title: "Image Gallery with Names", Captions: true},
	{FileName: model.PlainGalleryFileName, Title: "Image Gallery", Captions: false},
}

// document is the template data.
type document struct {
	Title    string
	Captions bool
	Images   []string
}

// Render writes one gallery document for images to w. Tiles appear in the
// order of images. Output depends only on the arguments, so rendering the
// same list twice yields identical bytes.
func Render(w io.Writer, v Variant, images []string) error {
	return tmpl.Execute(w, document{Title: v.Title, Captions: v.Captions, Images: images})
}

// Write renders every variant and writes it into dir, overwriting any
// previous content. It returns the written paths in order.
//
// There is no rollback: if the second document fails, the first one has
// already been replaced.
func Write(fsys afero.Fs, dir string, images []string) ([]string, error) {
	written := make([]string, 0, len(Variants))
	for _, v := range Variants {
		var buf bytes.Buffer
		if err := Render(&buf, v, images); err != nil {
			return written, fmt.Errorf("failed to render %s: %w", v.FileName, err)
		}

		path := filepath.Join(dir, v.FileName)
		if err := afero.WriteFile(fsys, path, buf.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
