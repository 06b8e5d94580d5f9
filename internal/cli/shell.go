package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	grerrors "github.com/ironsheep/grime/internal/errors"
	"github.com/ironsheep/grime/internal/session"
)

const prompt = "grime> "

// shellCommand creates the shell command. A failing line is reported and the
// shell keeps reading; quit or end of input ends it.
func (c *CLI) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Read script commands interactively",
		Long: `Read script commands from stdin, one per line.

A prompt is shown when stdin is a terminal. Errors are reported and the shell
continues; type quit or send end of input to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, closeStore, err := c.openSession(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeStore()

			return runShell(cmd, sess, isTerminal(cmd.InOrStdin()))
		},
	}
}

func runShell(cmd *cobra.Command, sess *session.Session, interactive bool) error {
	ctx := cmd.Context()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if interactive {
		printInfo(out, "type help for commands, quit to leave")
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	lineNo := 0
	for {
		if interactive {
			fmt.Fprint(out, prompt)
		}
		if !scanner.Scan() {
			break
		}
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}

		err := sess.Exec(ctx, scanner.Text())
		if errors.Is(err, session.ErrQuit) {
			return nil
		}
		if err != nil {
			if interactive {
				printError(errOut, "%s", grerrors.UserMessage(err))
			} else {
				printError(errOut, "line %d: %s", lineNo, grerrors.UserMessage(err))
			}
		}
	}
	if interactive {
		fmt.Fprintln(out)
	}
	return scanner.Err()
}

// isTerminal reports whether r is a terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
