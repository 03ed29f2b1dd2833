// Package cli — init.go implements the "gallerygen init" command, which
// writes a commented default tool configuration file.
package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/gallerygen/internal/config"
	"github.com/shinji-kodama/gallerygen/internal/model"
)

// initFlags holds the flag values for the init command.
type initFlags struct {
	force bool // --force: overwrite an existing file
}

// NewInitCommand creates the "init" cobra command.
func NewInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default .gallerygen.yaml",
		Long: `Write the default tool configuration to .gallerygen.yaml, or to the
path given with --config or GALLERYGEN_CONFIG_FILE.

The tool configuration holds how gallerygen runs (directory, logging,
watch debounce). The recognized image extensions stay in settings.txt.

Examples:
  gallerygen init
  gallerygen init --force
  gallerygen init --config ~/.config/gallerygen.yaml`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

// runInit is the main logic function for the init command. It does not
// load the existing configuration, which may be the broken file the user
// wants to replace.
func runInit(cmd *cobra.Command, flags *initFlags) error {
	path := config.ExplicitFile(configFile)
	if path == "" {
		path = config.DefaultFileName
	}

	if err := config.WriteDefault(fileSystem, path, flags.force); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return model.WrapCLIError(model.ExitUserCancelled,
				fmt.Sprintf("%s already exists (use --force to overwrite)", path), nil)
		}
		return model.WrapCLIError(model.ExitGeneralError, "failed to write configuration", err)
	}

	if jsonOutput {
		printJSON(cmd.OutOrStdout(), map[string]string{"created": path})
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
