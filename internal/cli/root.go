// Package cli implements the cobra-based CLI commands for gallerygen.
//
// Each subcommand (generate, watch, list, init) is defined in its own file
// within this package. This file defines the root command, the global
// flags shared by every subcommand and the process exit handling.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/gallerygen/internal/config"
	"github.com/shinji-kodama/gallerygen/internal/logging"
	"github.com/shinji-kodama/gallerygen/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command.
var (
	// configFile is an explicit tool configuration file (--config).
	configFile string

	// verbose forces debug logging on stderr.
	verbose bool

	// jsonOutput switches command results and errors to JSON for scripts.
	// The exit prompt is skipped in this mode.
	jsonOutput bool
)

// fileSystem is the filesystem every command operates on.
// Tests replace it with an in-memory filesystem.
var fileSystem afero.Fs = afero.NewOsFs()

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// Invoked without a subcommand, the root command behaves like "generate",
// which keeps the double-click-and-run workflow of the tool: drop the
// binary next to the images and start it.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gallerygen",
		Short: "Generate static HTML image galleries for a directory",
		Long: `gallerygen scans a directory for images and writes two static gallery pages:
index.html shows every image with its filename, index2.html shows images only.
It also writes an .htaccess file that stops visitors from listing the
directory or fetching the images and settings.txt directly.

Recognized extensions are read from settings.txt in the gallery directory.
When the file is missing, a default one is created and the run stops so
that it can be reviewed.`,

		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors lets Execute format errors itself (text or JSON
		// based on --json).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd)
		},
	}

	// Reset globals so that repeated constructions (tests) start clean.
	configFile, verbose, jsonOutput = "", false, false

	defaults := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Tool config file (default: .gallerygen.yaml, or GALLERYGEN_CONFIG_FILE)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	flags.String("dir", defaults.Dir, "Gallery directory")
	flags.String("log-level", defaults.Log.Level, "Log level: debug, info, warn, error")
	flags.String("log-format", defaults.Log.Format, "Log format: console, json")

	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewInitCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	err := rootCmd.Execute()
	if code := exitCodeFor(err); code != model.ExitSuccess {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(int(code))
	}
}

// exitCodeFor maps an error to a process exit code. CLIError types carry
// their own code; other errors default to ExitGeneralError.
func exitCodeFor(err error) model.ExitCode {
	if err == nil {
		return model.ExitSuccess
	}
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return model.ExitGeneralError
}

// printError writes err to w, as "Error: <message>: <cause>" or, with
// --json, as {"error": {"message": ..., "detail": ...}}.
func printError(w io.Writer, err error) {
	if !jsonOutput {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	errObj := map[string]interface{}{
		"message": err.Error(),
	}
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		errObj["message"] = cliErr.Message
		if cliErr.Err != nil {
			errObj["detail"] = cliErr.Err.Error()
		}
	}
	printJSON(w, map[string]interface{}{"error": errObj})
}

// printJSON writes v to w as indented JSON followed by a newline.
func printJSON(w io.Writer, v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}

// runtimeEnv bundles the resolved configuration and logger for one command.
type runtimeEnv struct {
	cfg    *config.Config
	logger *zap.Logger
}

// setup resolves the configuration from flags, environment and config
// file, then builds the logger.
func setup(cmd *cobra.Command) (*runtimeEnv, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to read flags", err)
	}

	cfg, err := config.Load(v, fileSystem, configFile, ".")
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to load configuration", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to set up logging", err)
	}
	if cfg.File != "" {
		logger.Debug("using config file", zap.String("path", cfg.File))
	}

	return &runtimeEnv{cfg: cfg, logger: logger}, nil
}
