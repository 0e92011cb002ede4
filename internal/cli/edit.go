package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xformgraph/pkg/errors"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

// newCommand creates the "new" command, which writes an empty graph file.
func (c *CLI) newCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty graph document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			ws := c.newWorkspace(path)
			if err := ws.save(); err != nil {
				return err
			}
			printSuccess("Created empty graph")
			printFile(path)
			printNextStep("Add a transform", appName+" add LoadFile --set file_name=in.png")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

// addCommand creates the "add" command.
func (c *CLI) addCommand() *cobra.Command {
	var (
		name string
		sets []string
	)
	cmd := &cobra.Command{
		Use:   "add <type>",
		Short: "Add a transform to the graph",
		Long: `Add a transform of the given type. Without --name the transform is named
after its type, with a numeric suffix if that name is taken.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := parseSets(sets)
			if err != nil {
				return err
			}
			ws, err := c.openWorkspace(true)
			if err != nil {
				return err
			}
			typ := args[0]
			if name == "" {
				name = ws.graph.NextFreeNameLike(typ)
			}
			x, err := ws.registry.Make(typ, name, conf)
			if err != nil {
				return err
			}
			if err := x.Init(); err != nil {
				return fmt.Errorf("init %s: %w", name, err)
			}
			if err := ws.graph.AddXform(x); err != nil {
				return err
			}
			if err := ws.save(); err != nil {
				return err
			}
			state, _ := ws.graph.StateFor(name)
			printSuccess("Added %s %s", StyleHighlight.Render(name), StyleDim.Render("("+typ+")"))
			printKeyValue("state", renderState(state))
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "transform name")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "configuration value as key=value (repeatable)")
	return cmd
}

// deleteCommand creates the "delete" command.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "delete <name>...",
		Aliases:           []string{"rm"},
		Short:             "Delete transforms and their connections",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeXformNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(false)
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := ws.graph.DeleteXform(name); err != nil {
					return err
				}
				printSuccess("Deleted %s", StyleHighlight.Render(name))
			}
			return ws.save()
		},
	}
}

// connectCommand creates the "connect" command.
func (c *CLI) connectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <xform:output> <xform:input>",
		Short: "Connect an output port to an input port",
		Long: `Connect an output port to an input port. An existing link on either
port is replaced. Connections that would create a cycle are rejected.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completePorts,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := xform.ParseOutputPort(args[0])
			if err != nil {
				return err
			}
			to, err := xform.ParseInputPort(args[1])
			if err != nil {
				return err
			}
			ws, err := c.openWorkspace(false)
			if err != nil {
				return err
			}
			if err := ws.graph.Connect(from, to); err != nil {
				return err
			}
			if err := ws.save(); err != nil {
				return err
			}
			printSuccess("Connected %s %s %s", from, iconArrow, to)
			return nil
		},
	}
}

// disconnectCommand creates the "disconnect" command.
func (c *CLI) disconnectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect [xform:output] <xform:input>",
		Short: "Remove the connection into an input port",
		Long: `Remove the connection into an input port. With two arguments the link is
only removed if it runs from the given output.`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: c.completePorts,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(false)
			if err != nil {
				return err
			}
			to, err := xform.ParseInputPort(args[len(args)-1])
			if err != nil {
				return err
			}
			if len(args) == 2 {
				from, err := xform.ParseOutputPort(args[0])
				if err != nil {
					return err
				}
				err = ws.graph.DisconnectLink(from, to)
			} else {
				err = ws.graph.Disconnect(to)
			}
			if err != nil {
				return err
			}
			if err := ws.save(); err != nil {
				return err
			}
			printSuccess("Disconnected %s", to)
			return nil
		},
	}
}

// configureCommand creates the "configure" command.
func (c *CLI) configureCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "configure <name> <key=value>...",
		Short:             "Set configuration values on a transform",
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: c.completeXformNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := parseSets(args[1:])
			if err != nil {
				return err
			}
			ws, err := c.openWorkspace(false)
			if err != nil {
				return err
			}
			x, ok := ws.graph.Xform(args[0])
			if !ok {
				return errors.New(errors.ErrCodeNoSuchXform, "no such xform: %s", args[0])
			}
			for k, v := range conf {
				if x.Config().TypeFor(k) == xform.PropertyUnknown {
					printWarning("%s has no property %s", x.Name(), k)
					continue
				}
				if err := x.Config().Parse(k, v); err != nil {
					return err
				}
			}
			ws.graph.RefreshStates()
			if err := ws.save(); err != nil {
				return err
			}
			state, _ := ws.graph.StateFor(x.Name())
			printSuccess("Configured %s", StyleHighlight.Render(x.Name()))
			printKeyValue("state", renderState(state))
			return nil
		},
	}
}

// parseSets turns key=value arguments into a configuration map.
func parseSets(sets []string) (map[string]string, error) {
	conf := make(map[string]string, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		if !ok || k == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "expected key=value, got %q", s)
		}
		conf[k] = v
	}
	return conf, nil
}
