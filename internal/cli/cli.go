// Package cli implements the grime command-line interface.
//
// The CLI is built using cobra. Every command reads the optional TOML file
// named by --config (see package config) and logs through charmbracelet/log
// to stderr; --verbose switches the logger to debug level.
//
// # Commands
//
//   - serve: Run the MCP server on stdin/stdout
//   - run: Execute script files
//   - shell: Read script commands interactively
//   - apply: Apply one operation to image files
//   - info: Describe an image file
//   - config: Print the effective configuration
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/grime/internal/buildinfo"
	"github.com/ironsheep/grime/internal/codec"
	"github.com/ironsheep/grime/internal/config"
	"github.com/ironsheep/grime/internal/session"
	"github.com/ironsheep/grime/internal/store"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "grime",
		Short: "grime edits images with scripts, a shell or MCP tools",
		Long: `grime is an image engine: flips, brightness, greyscale, RGB split and
combine, blur, sharpen, sepia, dither and mosaic over plain-text PPM (P3),
PNG, JPEG and BMP files.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := c.configure(); err != nil {
			return err
		}
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML configuration file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.shellCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.configCommand())

	return root
}

// configure loads the configuration and sets the log level from it. The
// --verbose flag wins over the configured level.
func (c *CLI) configure() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	level, err := cfg.Log.ParseLevel()
	if err != nil {
		return err
	}
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	c.cfg = cfg
	return nil
}

func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// openSession opens the configured store and returns a session over it.
// Help text goes to out. The returned function closes the store.
func (c *CLI) openSession(ctx context.Context, out io.Writer) (*session.Session, func(), error) {
	cfg := c.settings()
	st, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	c.Logger.Debug("opened store", "backend", cfg.Store.Backend)

	sess := session.New(st, session.Options{
		Codec:        codec.New(cfg.Codec.JPEGQuality),
		Logger:       loggerFromContext(ctx),
		Output:       out,
		MosaicSeed:   cfg.Mosaic.Seed,
		DefaultSeeds: cfg.Mosaic.DefaultSeeds,
	})
	closeStore := func() {
		if err := st.Close(); err != nil {
			c.Logger.Warn("failed to close store", "err", err)
		}
	}
	return sess, closeStore, nil
}
