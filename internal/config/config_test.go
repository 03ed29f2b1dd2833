package config

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFs returns an in-memory filesystem with the given files.
func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work", 0o755))
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}
	return fsys
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvConfigFile, "")

	cfg, err := Load(New(), newFs(t, nil), "", "/work")
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Dir)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	assert.Empty(t, cfg.File)
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	fsys := newFs(t, map[string]string{
		"/work/.gallerygen.yaml": "dir: photos\nlog:\n  level: info\nwatch:\n  debounce: 2s\n",
	})

	cfg, err := Load(New(), fsys, "", "/work")
	require.NoError(t, err)

	assert.Equal(t, "photos", cfg.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format, "unset keys keep their defaults")
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	assert.Equal(t, "/work/.gallerygen.yaml", cfg.File)
}

// TestLoad_JSONCFile verifies that comments and trailing commas are accepted.
func TestLoad_JSONCFile(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	fsys := newFs(t, map[string]string{
		"/work/.gallerygen.json": `{
  // where the images live
  "dir": "/srv/www/gallery",
  /* structured logs for the CI box */
  "log": {"format": "json", "level": "error",},
}`,
	})

	cfg, err := Load(New(), fsys, "", "/work")
	require.NoError(t, err)

	assert.Equal(t, "/srv/www/gallery", cfg.Dir)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_SearchOrder(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	fsys := newFs(t, map[string]string{
		"/work/.gallerygen.yml":  "dir: from-yml\n",
		"/work/.gallerygen.json": `{"dir": "from-json"}`,
	})

	cfg, err := Load(New(), fsys, "", "/work")
	require.NoError(t, err)
	assert.Equal(t, "from-yml", cfg.Dir)
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	fsys := newFs(t, map[string]string{
		"/work/.gallerygen.yaml": "dir: default-file\n",
		"/etc/gallery.yml":       "dir: explicit-file\n",
	})

	cfg, err := Load(New(), fsys, "/etc/gallery.yml", "/work")
	require.NoError(t, err)
	assert.Equal(t, "explicit-file", cfg.Dir)
	assert.Equal(t, "/etc/gallery.yml", cfg.File)
}

func TestLoad_EnvConfigFile(t *testing.T) {
	t.Setenv(EnvConfigFile, "/etc/from-env.yaml")
	fsys := newFs(t, map[string]string{
		"/etc/from-env.yaml": "dir: env-file\n",
	})

	cfg, err := Load(New(), fsys, "", "/work")
	require.NoError(t, err)
	assert.Equal(t, "env-file", cfg.Dir)
}

func TestExplicitFile(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		env        string
		wantResult string
	}{
		{name: "neither set", wantResult: ""},
		{name: "flag only", flag: "a.yaml", wantResult: "a.yaml"},
		{name: "env only", env: "/etc/b.yaml", wantResult: "/etc/b.yaml"},
		{name: "flag wins over env", flag: "a.yaml", env: "/etc/b.yaml", wantResult: "a.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigFile, tt.env)
			assert.Equal(t, tt.wantResult, ExplicitFile(tt.flag))
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("GALLERYGEN_LOG_LEVEL", "debug")
	t.Setenv("GALLERYGEN_WATCH_DEBOUNCE", "1500ms")
	fsys := newFs(t, map[string]string{
		"/work/.gallerygen.yaml": "log:\n  level: error\n",
	})

	cfg, err := Load(New(), fsys, "", "/work")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 1500*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("GALLERYGEN_DIR", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dir", ".", "")
	flags.String("log-format", "console", "")
	require.NoError(t, flags.Parse([]string{"--dir", "from-flag"}))

	v := New()
	require.NoError(t, BindFlags(v, flags))

	cfg, err := Load(v, newFs(t, nil), "", "/work")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Dir)
	assert.Equal(t, "console", cfg.Log.Format, "unchanged flag does not override")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]string
		configFile string
		wantErr    string
	}{
		{
			name:       "explicit file missing",
			configFile: "/nope.yaml",
			wantErr:    "config file not found",
		},
		{
			name:       "unsupported extension",
			files:      map[string]string{"/work/conf.toml": "dir = 'x'"},
			configFile: "/work/conf.toml",
			wantErr:    "unsupported config file type",
		},
		{
			name:       "malformed yaml",
			files:      map[string]string{"/work/bad.yaml": "dir: [unclosed\n"},
			configFile: "/work/bad.yaml",
			wantErr:    "failed to parse config file",
		},
		{
			name:    "invalid log level",
			files:   map[string]string{"/work/.gallerygen.yaml": "log:\n  level: loud\n"},
			wantErr: "invalid log level",
		},
		{
			name:    "invalid log format",
			files:   map[string]string{"/work/.gallerygen.yaml": "log:\n  format: xml\n"},
			wantErr: "invalid log format",
		},
		{
			name:    "non-positive debounce",
			files:   map[string]string{"/work/.gallerygen.yaml": "watch:\n  debounce: 0s\n"},
			wantErr: "debounce must be positive",
		},
		{
			name:    "empty dir",
			files:   map[string]string{"/work/.gallerygen.yaml": "dir: \"\"\n"},
			wantErr: "dir must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigFile, "")

			_, err := Load(New(), newFs(t, tt.files), tt.configFile, "/work")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "# gallerygen configuration\n")
	assert.Regexp(t, `(?m)^dir: "?\."?$`, out)
	assert.Contains(t, out, "    level: warn\n")
	assert.Contains(t, out, "    debounce: 500ms\n")
}

// TestWriteDefault_LoadsBack verifies that the file written by init is
// accepted by Load and reproduces the defaults.
func TestWriteDefault_LoadsBack(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	fsys := newFs(t, nil)

	require.NoError(t, WriteDefault(fsys, "/work/.gallerygen.yaml", false))

	cfg, err := Load(New(), fsys, "", "/work")
	require.NoError(t, err)
	assert.Equal(t, "/work/.gallerygen.yaml", cfg.File)
	cfg.File = ""
	assert.Equal(t, Default(), *cfg)
}

func TestWriteDefault_Existing(t *testing.T) {
	fsys := newFs(t, map[string]string{"/work/.gallerygen.yaml": "dir: keep\n"})

	err := WriteDefault(fsys, "/work/.gallerygen.yaml", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrExist))

	data, err := afero.ReadFile(fsys, "/work/.gallerygen.yaml")
	require.NoError(t, err)
	assert.Equal(t, "dir: keep\n", string(data))

	require.NoError(t, WriteDefault(fsys, "/work/.gallerygen.yaml", true))
	data, err = afero.ReadFile(fsys, "/work/.gallerygen.yaml")
	require.NoError(t, err)
	assert.NotContains(t, string(data), "keep")
}
