// Package config resolves gallerygen's tool options using Viper.
//
// Configuration sources, highest priority first:
//  1. Command-line flags bound with BindFlags (--dir, --log-format, ...)
//  2. GALLERYGEN_* environment variables (GALLERYGEN_LOG_LEVEL, GALLERYGEN_WATCH_DEBOUNCE)
//  3. A configuration file: --config, else GALLERYGEN_CONFIG_FILE, else the
//     first of .gallerygen.yaml, .gallerygen.yml, .gallerygen.json found in
//     the search directory
//  4. Built-in defaults
//
// JSON configuration files may contain comments and trailing commas; they
// are normalized with github.com/tidwall/jsonc before Viper parses them.
//
// These options only tune how the tool runs. The recognized image formats
// live in settings.txt next to the images and are handled by package formats.
package config
