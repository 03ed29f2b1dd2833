package htaccess

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/shinji-kodama/gallerygen/internal/model"
)

// DeniedExtensions returns the alternation members of the FilesMatch
// pattern: every format token followed by the settings file extension.
// Glob prefixes ("*.") are removed wherever they occur in a token, so a
// settings line written as "*.png" still yields "png".
func DeniedExtensions(formats model.Formats) []string {
	denied := make([]string, 0, len(formats)+1)
	for _, token := range formats {
		denied = append(denied, strings.ReplaceAll(token, "*.", ""))
	}
	return append(denied, strings.TrimPrefix(filepath.Ext(model.SettingsFileName), "."))
}

// Build returns the .htaccess content for formats:
//
//	Options -Indexes
//	<FilesMatch "(svg|png|txt)">
//	  Require all denied
//	</FilesMatch>
func Build(formats model.Formats) string {
	var b strings.Builder
	b.WriteString("Options -Indexes\n")
	fmt.Fprintf(&b, "<FilesMatch \"(%s)\">\n", strings.Join(DeniedExtensions(formats), "|"))
	b.WriteString("  Require all denied\n")
	b.WriteString("</FilesMatch>\n")
	return b.String()
}

// Write stores Build(formats) as .htaccess in dir, replacing any previous
// file, and returns its path.
func Write(fsys afero.Fs, dir string, formats model.Formats) (string, error) {
	path := filepath.Join(dir, model.RestrictionFileName)
	if err := afero.WriteFile(fsys, path, []byte(Build(formats)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
