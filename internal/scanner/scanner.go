package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shinji-kodama/gallerygen/internal/model"
)

// Scan lists dir and returns the names of the regular files matching
// formats, in ascending order. An empty result is not an error.
func Scan(fsys afero.Fs, dir string, formats model.Formats) ([]string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	lower := cases.Lower(language.Und)
	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !isRegularFile(fsys, dir, entry) {
			continue
		}
		if Matches(lower.String(entry.Name()), formats) {
			images = append(images, entry.Name())
		}
	}

	sort.Strings(images)
	return images, nil
}

// Matches reports whether lowerName ends with any token in formats.
//
// The test is a plain suffix check with no dot boundary: "png" matches
// "photo.png" and also "photopng". Callers pass an already lowercased name.
func Matches(lowerName string, formats model.Formats) bool {
	for _, ext := range formats {
		if strings.HasSuffix(lowerName, ext) {
			return true
		}
	}
	return false
}

// isRegularFile resolves symbolic links so that a link to a regular file
// counts as one. Dangling links are skipped.
func isRegularFile(fsys afero.Fs, dir string, entry os.FileInfo) bool {
	if entry.Mode()&os.ModeSymlink == 0 {
		return entry.Mode().IsRegular()
	}
	target, err := fsys.Stat(filepath.Join(dir, entry.Name()))
	if err != nil {
		return false
	}
	return target.Mode().IsRegular()
}
