// Package cli implements the apportion command-line interface.
//
// # Commands
//
//   - run:     biproportional apportionment of one problem file
//   - divisor: single-dimension Sainte-Laguë apportionment
//   - batch:   many problem files solved concurrently
//   - serve:   HTTP API
//   - version: build information
//
// # Logging
//
// Logs go to stderr through charmbracelet/log; --verbose switches to debug
// level. The logger travels in the command context.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/apportion/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the build information shown by --version and the
// version command. Values are usually injected with ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfgFile string
	verbose bool
	cfg     *config.Config
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// RootCommand creates the root cobra command with all subcommands.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "apportion",
		Short: "Apportion seats with exact divisor methods",
		Long: `apportion computes biproportional (double-proportional) seat apportionments
with the Sainte-Laguë divisor method in exact rational arithmetic, and reports
every cell whose rounding is a tie that needs a lot decision.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.SetVersionTemplate(versionString() + "\n")

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default: apportion.yaml in the config dir or working dir)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.divisorCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// setup loads the configuration, applies the log level and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	v, err := config.NewViper(c.cfgFile)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg

	level, err := log.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.verbose {
		level = LogDebug
	}
	c.Logger.SetLevel(level)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))

	return nil
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return err
		},
	}
}

func versionString() string {
	return fmt.Sprintf("apportion %s\ncommit: %s\nbuilt: %s", version, commit, date)
}
