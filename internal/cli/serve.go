package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/grime/internal/server"
)

// serveCommand creates the serve command, which speaks MCP on stdio.
func (c *CLI) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Run the MCP (Model Context Protocol) server.

Requests are read from stdin, one JSON-RPC message per line, and responses are
written to stdout. Logs go to stderr. Configure grime in your MCP client with
the command "grime serve".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			// stdout carries the protocol, so script help goes to stderr.
			sess, closeStore, err := c.openSession(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()

			logger := loggerFromContext(ctx)
			logger.Info("serving MCP on stdio", "backend", c.settings().Store.Backend)
			return server.New(sess, logger).Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
