package pipeline

import (
	"context"
	"errors"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/shinji-kodama/gallerygen/internal/formats"
	"github.com/shinji-kodama/gallerygen/internal/gallery"
	"github.com/shinji-kodama/gallerygen/internal/htaccess"
	"github.com/shinji-kodama/gallerygen/internal/model"
	"github.com/shinji-kodama/gallerygen/internal/scanner"
)

// Runner executes pipeline passes against one directory.
type Runner struct {
	fs     afero.Fs
	dir    string
	logger *zap.Logger
}

// NewRunner creates a Runner for dir. A nil logger disables logging.
func NewRunner(fsys afero.Fs, dir string, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		fs:     fsys,
		dir:    dir,
		logger: logger.With(zap.String("dir", dir)),
	}
}

// Dir returns the directory the runner operates on.
func (r *Runner) Dir() string {
	return r.dir
}

// Run performs one pass. ctx is checked between states so that a watcher
// shutting down does not start writing artifacts.
func (r *Runner) Run(ctx context.Context) (*model.Result, error) {
	result := &model.Result{Dir: r.dir}

	// LOAD_FORMATS
	fmts, err := formats.Load(r.fs, r.dir)
	if errors.Is(err, formats.ErrNotFound) {
		path, werr := formats.WriteDefault(r.fs, r.dir)
		if werr != nil {
			return nil, werr
		}
		r.logger.Warn("settings file missing, default created", zap.String("path", path))
		result.Status = model.StatusBootstrapped
		result.Written = []string{path}
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	result.Formats = fmts
	r.logger.Debug("loaded formats", zap.Strings("formats", fmts))

	// SCAN
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	images, err := scanner.Scan(r.fs, r.dir, fmts)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("scanned directory", zap.Int("images", len(images)))
	if len(images) == 0 {
		result.Status = model.StatusNoImages
		return result, nil
	}
	result.Images = images

	// RENDER
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	written, err := gallery.Write(r.fs, r.dir, images)
	if err != nil {
		return nil, err
	}
	result.Written = append(result.Written, written...)
	r.logger.Debug("wrote gallery documents", zap.Strings("paths", written))

	// RESTRICT
	path, err := htaccess.Write(r.fs, r.dir, fmts)
	if err != nil {
		return nil, err
	}
	result.Written = append(result.Written, path)
	r.logger.Debug("wrote restriction file", zap.String("path", path))

	result.Status = model.StatusGenerated
	return result, nil
}
