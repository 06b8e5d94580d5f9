package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/grime/internal/session"
)

// runCommand creates the run command, which executes script files in order
// against one session.
func (c *CLI) runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run SCRIPT...",
		Short: "Execute script files",
		Long: `Execute script files, one command per line.

All scripts share one image store, so a later script can use the names an
earlier one created. Execution stops at the first failing line.

` + session.HelpText,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, closeStore, err := c.openSession(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeStore()

			logger := loggerFromContext(ctx)
			for _, path := range args {
				prog := newProgress(logger, "script", path)
				err := sess.RunScript(ctx, path)
				if errors.Is(err, session.ErrQuit) {
					printInfo(cmd.ErrOrStderr(), "quit in %s", path)
					return nil
				}
				if err != nil {
					return fmt.Errorf("run %s: %w", path, err)
				}
				prog.done("ran script")
			}
			return nil
		},
	}
}
