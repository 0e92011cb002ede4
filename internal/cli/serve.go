package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/xformgraph/internal/api"
	"github.com/matzehuels/xformgraph/pkg/graph"
	"github.com/matzehuels/xformgraph/pkg/observability"
)

// serveCommand creates the "serve" command, which exposes the graph file
// over HTTP until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		saveOnExit bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph over HTTP",
		Long: `Serve the graph over HTTP for editors and dashboards. The graph file is
loaded at startup (or started empty) and, with --save, written back on shutdown.
Prometheus metrics are served on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(true)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = c.settings.Server.Addr
			}

			promReg := prometheus.NewRegistry()
			promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			hooks := observability.NewPrometheusHooks(promReg)
			observability.SetGraphHooks(hooks)
			observability.SetStoreHooks(hooks)
			defer observability.Reset()

			session := api.NewSession(ws.graph, ws.registry, ws.textures, graph.WithLogger(c.Logger))
			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewHandler(session, api.WithLogger(c.Logger), api.WithGatherer(promReg)),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			logger := loggerFromContext(cmd.Context())
			logger.Info("serving graph", "addr", addr, "graph", ws.path)

			select {
			case err := <-errc:
				return err
			case <-cmd.Context().Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("server stopped")

			if saveOnExit {
				return session.Do(func(g *graph.Graph) error {
					ws.graph = g
					return ws.save()
				})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from settings, :8080)")
	cmd.Flags().BoolVar(&saveOnExit, "save", false, "write the graph back to its file on shutdown")
	return cmd
}

// settingsCommand creates the "settings" command.
func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or create the settings file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println(c.settingsFile())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.settingsFile()
			if err := writeSettings(path, defaultSettings()); err != nil {
				return err
			}
			printSuccess("Wrote default settings")
			printFile(path)
			return nil
		},
	})
	return cmd
}

func (c *CLI) settingsFile() string {
	if c.settingsPath != "" {
		return c.settingsPath
	}
	return defaultSettingsPath()
}
