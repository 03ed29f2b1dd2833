package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/gallerygen/internal/logging"
)

const (
	// EnvPrefix prefixes every environment variable read by the tool.
	EnvPrefix = "GALLERYGEN"

	// EnvConfigFile names an explicit configuration file.
	EnvConfigFile = EnvPrefix + "_CONFIG_FILE"

	// DefaultFileName is the file written by "gallerygen init".
	DefaultFileName = ".gallerygen.yaml"
)

// searchNames are tried in order when no file is given explicitly.
var searchNames = []string{DefaultFileName, ".gallerygen.yml", ".gallerygen.json"}

// Viper keys.
const (
	KeyDir           = "dir"
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
	KeyWatchDebounce = "watch.debounce"
)

// Config holds the resolved tool options.
type Config struct {
	// Dir is the gallery directory: where settings.txt and the images live
	// and where the artifacts are written.
	Dir string `mapstructure:"dir"`

	Log   LogConfig   `mapstructure:"log"`
	Watch WatchConfig `mapstructure:"watch"`

	// File is the configuration file that was read, empty if none.
	File string `mapstructure:"-"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// WatchConfig configures "gallerygen watch".
type WatchConfig struct {
	// Debounce is the quiet period after the last file event before the
	// gallery is regenerated.
	Debounce time.Duration `mapstructure:"debounce"`
}

// Default returns the built-in option values.
func Default() Config {
	return Config{
		Dir:   ".",
		Log:   LogConfig{Level: "warn", Format: logging.FormatConsole},
		Watch: WatchConfig{Debounce: 500 * time.Millisecond},
	}
}

// New returns a Viper instance carrying the defaults and the environment
// variable binding.
func New() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault(KeyDir, d.Dir)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFormat, d.Log.Format)
	v.SetDefault(KeyWatchDebounce, d.Watch.Debounce.String())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds command-line flags to their Viper keys. Only flags that
// exist in flags are bound; flags left at their default do not override
// lower-priority sources.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		KeyDir:       "dir",
		KeyLogLevel:  "log-level",
		KeyLogFormat: "log-format",
	}
	for key, name := range bindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// ExplicitFile returns the configuration file named by configFile (the
// --config value) or, when that is empty, by GALLERYGEN_CONFIG_FILE.
// It returns "" when neither is set.
func ExplicitFile(configFile string) string {
	if configFile != "" {
		return configFile
	}
	return os.Getenv(EnvConfigFile)
}

// Load resolves the configuration. configFile is the --config value;
// searchDir is where the default file names are looked up.
func Load(v *viper.Viper, fsys afero.Fs, configFile, searchDir string) (*Config, error) {
	path := ExplicitFile(configFile)
	if path == "" {
		found, err := search(fsys, searchDir)
		if err != nil {
			return nil, err
		}
		path = found
	}

	if path != "" {
		if err := readFile(v, fsys, path); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// search returns the first default configuration file present in dir,
// or "" when there is none.
func search(fsys afero.Fs, dir string) (string, error) {
	for _, name := range searchNames {
		path := filepath.Join(dir, name)
		exists, err := afero.Exists(fsys, path)
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", path, err)
		}
		if exists {
			return path, nil
		}
	}
	return "", nil
}

// readFile loads path into v. The format follows the file extension;
// JSON files are stripped of comments and trailing commas first.
func readFile(v *viper.Viper, fsys afero.Fs, path string) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file not found: %s", path)
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".jsonc":
		v.SetConfigType("json")
		data = jsonc.ToJSON(data)
	case ".yaml", ".yml":
		v.SetConfigType("yaml")
	default:
		return fmt.Errorf("unsupported config file type %q: %s", ext, path)
	}

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks option values.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return errors.New("dir must not be empty")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != logging.FormatConsole && c.Log.Format != logging.FormatJSON {
		return fmt.Errorf("invalid log format %q (valid: console, json)", c.Log.Format)
	}
	if c.Watch.Debounce <= 0 {
		return fmt.Errorf("watch debounce must be positive, got %s", c.Watch.Debounce)
	}
	return nil
}

// fileView is the on-disk YAML layout. Durations are written as strings
// ("500ms") so that Viper decodes them back.
type fileView struct {
	Dir string `yaml:"dir"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Watch struct {
		Debounce string `yaml:"debounce"`
	} `yaml:"watch"`
}

// Marshal renders c as a YAML configuration file with a header comment.
func Marshal(c Config) ([]byte, error) {
	var view fileView
	view.Dir = c.Dir
	view.Log.Level = c.Log.Level
	view.Log.Format = c.Log.Format
	view.Watch.Debounce = c.Watch.Debounce.String()

	data, err := yaml.Marshal(&view)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize configuration: %w", err)
	}

	header := "# gallerygen configuration\n" +
		"# Environment variables (" + EnvPrefix + "_DIR, " + EnvPrefix + "_LOG_LEVEL, ...) and flags override these values.\n"
	return []byte(header + string(data)), nil
}

// WriteDefault writes the default configuration to path. It refuses to
// replace an existing file unless force is set; that case is reported
// with an error wrapping fs.ErrExist.
func WriteDefault(fsys afero.Fs, path string, force bool) error {
	if !force {
		exists, err := afero.Exists(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}
		if exists {
			return fmt.Errorf("%s: %w", path, fs.ErrExist)
		}
	}

	data, err := Marshal(Default())
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
