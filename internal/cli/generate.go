// Package cli — generate.go implements the "gallerygen generate" command,
// which is also what the bare "gallerygen" invocation runs.
//
// Orchestration steps:
//  1. Resolve configuration and logger
//  2. Run the pipeline once over the gallery directory
//  3. Print the outcome and wait for the user to acknowledge it
//     (with --json: print the run result as JSON and return)
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/gallerygen/internal/model"
	"github.com/shinji-kodama/gallerygen/internal/pipeline"
)

// User-facing messages for the terminal states.
const (
	msgBootstrapped = "⚠️  settings.txt not found.\nA default one has been created.\nPlease review and re-run the program."
	msgNoImages     = "⚠️  No image files found matching settings.txt formats."
	msgDone         = "All done successfully!"
)

// NewGenerateCommand creates the "generate" cobra command.
func NewGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate the gallery pages and .htaccess once",
		Long: `Generate index.html, index2.html and .htaccess for the gallery directory.

Examples:
  gallerygen
  gallerygen generate --dir ~/Pictures/holiday
  gallerygen generate -v`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd)
		},
	}
}

// runGenerate is the main logic function for the generate command.
func runGenerate(cmd *cobra.Command) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	runner := pipeline.NewRunner(fileSystem, env.cfg.Dir, env.logger)
	result, err := runner.Run(cmd.Context())
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "gallery generation failed", err)
	}
	env.logger.Debug("run finished", zap.Stringer("status", result.Status), zap.Int("images", result.ImageCount()))

	out := cmd.OutOrStdout()
	if jsonOutput {
		printJSON(out, result)
		return nil
	}
	printReport(out, result)
	return pauseExit(cmd, terminalMessage(result))
}

// printReport prints the per-run summary lines that precede the final
// message. Only a generated run has any.
func printReport(out io.Writer, result *model.Result) {
	if result.Status != model.StatusGenerated {
		return
	}
	fmt.Fprintf(out, "✅ Generated %s and %s with %d images.\n",
		model.CaptionedGalleryFileName, model.PlainGalleryFileName, result.ImageCount())
	fmt.Fprintf(out, "✅ Created %s file to restrict direct file access.\n", model.RestrictionFileName)
}

// terminalMessage returns the message shown before the exit prompt.
func terminalMessage(result *model.Result) string {
	switch result.Status {
	case model.StatusBootstrapped:
		return msgBootstrapped
	case model.StatusNoImages:
		return msgNoImages
	default:
		return msgDone
	}
}
