package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/gallerygen/internal/model"
)

// pauseExit shows message and blocks until the user presses Enter.
//
// Every terminal state of a run goes through here, so the console window
// stays open when the binary was started by double-clicking it. A closed
// stdin (EOF) counts as the acknowledgment.
func pauseExit(cmd *cobra.Command, message string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n"+message)
	fmt.Fprint(out, "Press any key to exit...")

	// bufio.Reader handles different line endings across platforms.
	reader := bufio.NewReader(cmd.InOrStdin())
	if _, err := reader.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return model.WrapCLIError(model.ExitGeneralError, "failed to read user input", err)
	}
	return nil
}
