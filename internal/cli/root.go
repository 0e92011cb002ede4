package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/xformgraph/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the settings file is loaded (--config, or
// config.toml in the XDG config directory) and its log_level applied unless
// main has already raised the level with --verbose.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "xformgraph builds and evaluates image transform graphs",
		Long:         `xformgraph edits graphs of image transforms stored as JSON or YAML documents, evaluates them, and serves them over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadSettings(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.settingsPath, "config", "", "settings file (default $XDG_CONFIG_HOME/xformgraph/config.toml)")
	root.PersistentFlags().StringVarP(&c.graphPath, "graph", "g", "", "graph document (.json, .yaml); default from settings or graph.json")

	// Graph editing
	root.AddCommand(c.newCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.connectCommand())
	root.AddCommand(c.disconnectCommand())
	root.AddCommand(c.configureCommand())

	// Inspection and evaluation
	root.AddCommand(c.listCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.tuiCommand())

	// Library, server and tooling
	root.AddCommand(c.libraryCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadSettings reads the settings file into c.settings. The file's
// log_level only takes effect when it is more verbose than the current
// level, so --verbose always wins.
func (c *CLI) loadSettings() error {
	s, err := loadSettings(c.settingsFile(), c.Logger)
	if err != nil {
		return err
	}
	c.settings = s
	if lvl, err := log.ParseLevel(s.LogLevel); err == nil && lvl < c.Logger.GetLevel() {
		c.SetLogLevel(lvl)
	}
	return nil
}
