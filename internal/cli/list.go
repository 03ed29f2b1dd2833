// Package cli — list.go implements the "gallerygen list" command.
//
// The list command is a dry run: it shows which files the next generate
// would put in the gallery, without writing anything. Unlike generate it
// does not create a missing settings.txt.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/gallerygen/internal/formats"
	"github.com/shinji-kodama/gallerygen/internal/model"
	"github.com/shinji-kodama/gallerygen/internal/scanner"
)

// NewListCommand creates the "list" cobra command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the images the gallery would contain",
		Long: `List the files of the gallery directory that match settings.txt,
in gallery order, without writing anything.

Examples:
  gallerygen list
  gallerygen list --dir ./photos`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd)
		},
	}
}

// runList is the main logic function for the list command.
func runList(cmd *cobra.Command) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	fmts, err := formats.Load(fileSystem, env.cfg.Dir)
	if err != nil {
		if errors.Is(err, formats.ErrNotFound) {
			return model.WrapCLIError(model.ExitSettingsNotFound,
				"settings file not found; run gallerygen once to create it", err)
		}
		return model.WrapCLIError(model.ExitGeneralError, "failed to load formats", err)
	}
	env.logger.Debug("loaded formats", zap.Strings("formats", fmts))

	images, err := scanner.Scan(fileSystem, env.cfg.Dir, fmts)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to scan directory", err)
	}

	printListResult(cmd, env.cfg.Dir, fmts, images)
	return nil
}

// printListResult outputs the matching images in text or JSON format,
// depending on the --json flag.
func printListResult(cmd *cobra.Command, dir string, fmts model.Formats, images []string) {
	if jsonOutput {
		printListResultJSON(cmd, dir, fmts, images)
		return
	}
	printListResultText(cmd, fmts, images)
}

// listResultJSON is the JSON output structure of the list command.
type listResultJSON struct {
	Dir     string        `json:"dir"`
	Formats model.Formats `json:"formats"`
	Images  []string      `json:"images"`
	Count   int           `json:"count"`
}

// printListResultJSON outputs the list as a single JSON object.
func printListResultJSON(cmd *cobra.Command, dir string, fmts model.Formats, images []string) {
	// Empty slices instead of nil so the output shows [] rather than null.
	if fmts == nil {
		fmts = model.Formats{}
	}
	if images == nil {
		images = []string{}
	}
	printJSON(cmd.OutOrStdout(), listResultJSON{
		Dir:     dir,
		Formats: fmts,
		Images:  images,
		Count:   len(images),
	})
}

// printListResultText prints one image per line followed by a summary.
//
//	a.png
//	b.jpg
//
//	2 image(s) matching svg,png,jpg
func printListResultText(cmd *cobra.Command, fmts model.Formats, images []string) {
	out := cmd.OutOrStdout()
	if len(images) == 0 {
		fmt.Fprintf(out, "No image files found matching %s.\n", fmts)
		return
	}

	for _, name := range images {
		fmt.Fprintln(out, name)
	}
	fmt.Fprintf(out, "\n%d image(s) matching %s\n", len(images), fmts)
}
