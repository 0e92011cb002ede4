package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xformgraph/pkg/errors"
	pkgio "github.com/matzehuels/xformgraph/pkg/io"
	"github.com/matzehuels/xformgraph/pkg/store"
)

// libraryCommand creates the graph library command. The library keeps
// named graph documents in the store selected by the settings file.
func (c *CLI) libraryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"lib"},
		Short:   "Keep named graphs in the library store",
	}

	cmd.AddCommand(c.libraryPutCommand())
	cmd.AddCommand(c.libraryGetCommand())
	cmd.AddCommand(c.libraryListCommand())
	cmd.AddCommand(c.libraryRemoveCommand())
	cmd.AddCommand(c.libraryPathCommand())

	return cmd
}

// withStore opens the library store for the duration of fn.
func (c *CLI) withStore(fn func(store.Store) error) error {
	s, err := c.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// libraryPutCommand creates the "library put" subcommand.
func (c *CLI) libraryPutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "put <key>",
		Short: "Store the current graph under key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(false)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := pkgio.WriteJSON(ws.graph, &buf); err != nil {
				return err
			}
			ttl, _ := c.settings.Store.ttl()
			return c.withStore(func(s store.Store) error {
				if err := s.Set(cmd.Context(), args[0], buf.Bytes(), ttl); err != nil {
					return err
				}
				printSuccess("Stored %s", StyleHighlight.Render(args[0]))
				printDetail("%d transforms, %d bytes", ws.graph.Len(), buf.Len())
				return nil
			})
		},
	}
}

// libraryGetCommand creates the "library get" subcommand.
func (c *CLI) libraryGetCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Write the stored graph to the graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			return c.withStore(func(s store.Store) error {
				data, ok, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return errors.Wrap(errors.ErrCodeNotFound, store.ErrNotFound, "library key %s", args[0])
				}
				doc, err := pkgio.DecodeJSON(bytes.NewReader(data))
				if err != nil {
					return err
				}
				reg, _ := c.newRegistry()
				g, err := pkgio.Build(doc, reg)
				if err != nil {
					return fmt.Errorf("stored graph %s: %w", args[0], err)
				}
				if err := pkgio.ExportFile(g, path); err != nil {
					return err
				}
				printSuccess("Restored %s", StyleHighlight.Render(args[0]))
				printFile(path)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing graph file")
	return cmd
}

// libraryListCommand creates the "library list" subcommand.
func (c *CLI) libraryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored graphs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(func(s store.Store) error {
				keys, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(keys) == 0 {
					printInfo("Library is empty")
					return nil
				}
				for _, k := range keys {
					fmt.Println(k)
				}
				return nil
			})
		},
	}
}

// libraryRemoveCommand creates the "library rm" subcommand.
func (c *CLI) libraryRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key>...",
		Short: "Remove stored graphs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(func(s store.Store) error {
				for _, k := range args {
					if err := s.Delete(cmd.Context(), k); err != nil {
						return err
					}
					printSuccess("Removed %s", k)
				}
				return nil
			})
		},
	}
}

// libraryPathCommand creates the "library path" subcommand.
func (c *CLI) libraryPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the library is kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.settings.Store
			switch cfg.Backend {
			case backendRedis:
				fmt.Printf("redis://%s/%d\n", cfg.RedisAddr, cfg.RedisDB)
			case backendNone:
				printInfo("Library is disabled")
			default:
				dir, err := c.libraryDir()
				if err != nil {
					return err
				}
				fmt.Println(dir)
			}
			return nil
		},
	}
}
