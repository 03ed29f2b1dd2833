package formats

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shinji-kodama/gallerygen/internal/model"
)

// DefaultContent is written to a fresh settings file. It has no trailing
// newline.
const DefaultContent = "svg\npng\njpg\njpeg\ngif"

// ErrNotFound is returned by Load when the settings file does not exist.
var ErrNotFound = errors.New("settings file not found")

// Path returns the location of the settings file inside dir.
func Path(dir string) string {
	return filepath.Join(dir, model.SettingsFileName)
}

// Load reads and parses the settings file in dir.
//
// A missing file yields ErrNotFound (wrapped, test with errors.Is) so that
// callers can decide whether to bootstrap it. Any other read failure is
// returned as-is.
func Load(fsys afero.Fs, dir string) (model.Formats, error) {
	path := Path(dir)
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data), nil
}

// WriteDefault creates the settings file in dir with DefaultContent.
// It never touches an existing file: if one appeared in the meantime
// WriteDefault fails with an error wrapping fs.ErrExist.
func WriteDefault(fsys afero.Fs, dir string) (string, error) {
	path := Path(dir)
	f, err := fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.WriteString(DefaultContent); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

// Parse converts settings file content into a format list.
//
// Every line whose trimmed form is non-blank contributes one token:
// surrounding whitespace is trimmed, the token is lowercased and any
// leading dots are removed. Order and duplicates are preserved and no
// syntax check is made, so a line holding only dots yields "".
//
// Lines may end in "\n", "\r\n" or a lone "\r".
func Parse(data []byte) model.Formats {
	lower := cases.Lower(language.Und)

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	formats := make(model.Formats, 0, 8)
	for _, line := range strings.Split(text, "\n") {
		token := strings.TrimSpace(line)
		if token == "" {
			continue
		}
		formats = append(formats, strings.TrimLeft(lower.String(token), "."))
	}
	return formats
}
