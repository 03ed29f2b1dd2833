// Package cli — watch.go implements the "gallerygen watch" command.
//
// The watch command generates the gallery once, then keeps it up to date
// while images are added, removed or renamed in the gallery directory.
// Changes are debounced (watch.debounce) so that copying a batch of files
// triggers a single regeneration. The command stops on Ctrl+C.
//
// With --json every run is printed as one compact JSON line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/gallerygen/internal/model"
	"github.com/shinji-kodama/gallerygen/internal/pipeline"
	"github.com/shinji-kodama/gallerygen/internal/watcher"
)

// NewWatchCommand creates the "watch" cobra command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the gallery whenever the directory changes",
		Long: `Generate the gallery, then watch the gallery directory and regenerate it
after images or settings.txt change. Press Ctrl+C to stop.

If settings.txt is missing, a default one is created and the command stops
without watching, exactly like generate.

Examples:
  gallerygen watch
  gallerygen watch --dir ./photos
  GALLERYGEN_WATCH_DEBOUNCE=2s gallerygen watch`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd)
		},
	}
}

// runWatch is the main logic function for the watch command.
func runWatch(cmd *cobra.Command) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	// Step 1: Generate once. A bootstrap ends the command right away, since
	// the user has to review settings.txt before a gallery makes sense.
	runner := pipeline.NewRunner(fileSystem, env.cfg.Dir, env.logger)
	result, err := runner.Run(cmd.Context())
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "gallery generation failed", err)
	}
	out := cmd.OutOrStdout()
	if result.Status == model.StatusBootstrapped {
		if jsonOutput {
			reportWatchRun(out, env.logger, result)
			return nil
		}
		return pauseExit(cmd, msgBootstrapped)
	}
	reportWatchRun(out, env.logger, result)

	// Step 2: Watch until interrupted.
	w, err := watcher.New(runner.Dir(), env.cfg.Watch.Debounce, env.logger)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to start watching", err)
	}
	defer func() { _ = w.Close() }()
	w.Ignore(model.Artifacts()...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if jsonOutput {
		env.logger.Info("watching for changes", zap.String("dir", runner.Dir()))
	} else {
		fmt.Fprintf(out, "Watching %s for changes. Press Ctrl+C to stop.\n", runner.Dir())
	}
	err = w.Run(ctx, func(ctx context.Context) error {
		result, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		reportWatchRun(out, env.logger, result)
		return nil
	})
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "watching failed", err)
	}

	if jsonOutput {
		return nil
	}
	return pauseExit(cmd, "Stopped watching.")
}

// reportWatchRun prints the outcome of one run while watching. Unlike
// generate, a run without images is only a warning: images may show up
// later. settings.txt being deleted while watching lands here as a
// bootstrap and is reported the same way.
func reportWatchRun(out io.Writer, logger *zap.Logger, result *model.Result) {
	if result.Status == model.StatusNoImages {
		logger.Warn("no image files found matching settings.txt formats", zap.Strings("formats", result.Formats))
	}
	if jsonOutput {
		_ = json.NewEncoder(out).Encode(result)
		return
	}

	switch result.Status {
	case model.StatusGenerated:
		printReport(out, result)
	case model.StatusNoImages:
		fmt.Fprintln(out, msgNoImages)
	case model.StatusBootstrapped:
		fmt.Fprintln(out, msgBootstrapped)
	}
}
