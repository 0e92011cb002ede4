package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/xformgraph/pkg/graph"
	pkgio "github.com/matzehuels/xformgraph/pkg/io"
	"github.com/matzehuels/xformgraph/pkg/raster"
	"github.com/matzehuels/xformgraph/pkg/store"
	"github.com/matzehuels/xformgraph/pkg/xform"
	"github.com/matzehuels/xformgraph/pkg/xforms"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "xformgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	settingsPath string
	graphPath    string
	settings     *Settings
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		settings: defaultSettings(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Workspace - a graph file and the registry that rebuilds it
// =============================================================================

// workspace is a graph loaded from a document file, with the registry and
// texture store its xforms were made from.
type workspace struct {
	path     string
	registry *xform.Registry
	textures *raster.TextureStore
	graph    *graph.Graph
}

func (c *CLI) newRegistry() (*xform.Registry, *raster.TextureStore) {
	textures := raster.NewTextureStore()
	reg := xforms.NewRegistry(textures)
	reg.SetLogger(c.Logger)
	return reg, textures
}

// path returns the graph file to operate on: the --graph flag, then the
// settings file, then graph.json.
func (c *CLI) path() string {
	if c.graphPath != "" {
		return c.graphPath
	}
	return c.settings.Graph
}

// newWorkspace returns an empty graph bound to path.
func (c *CLI) newWorkspace(path string) *workspace {
	reg, textures := c.newRegistry()
	return &workspace{
		path:     path,
		registry: reg,
		textures: textures,
		graph:    graph.New(graph.WithLogger(c.Logger)),
	}
}

// openWorkspace loads the graph file. When the file does not exist an empty
// graph is returned if allowMissing is set.
func (c *CLI) openWorkspace(allowMissing bool) (*workspace, error) {
	path := c.path()
	ws := c.newWorkspace(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !allowMissing {
			return nil, fmt.Errorf("graph file %s does not exist (create it with `%s new`)", path, appName)
		}
		return ws, nil
	}
	g, err := pkgio.ImportFile(path, ws.registry, graph.WithLogger(c.Logger))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	ws.graph = g
	c.Logger.Debug("loaded graph", "path", path, "xforms", g.Len())
	return ws, nil
}

// save writes the graph back to its file.
func (w *workspace) save() error {
	return pkgio.ExportFile(w.graph, w.path)
}

// =============================================================================
// Library store
// =============================================================================

// openStore builds the library backend described by the settings.
func (c *CLI) openStore() (store.Store, error) {
	cfg := c.settings.Store
	var s store.Store
	switch cfg.Backend {
	case backendNone:
		s = store.NewNullStore()
	case backendRedis:
		s = store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		dir, err := c.libraryDir()
		if err != nil {
			return nil, err
		}
		fs, err := store.NewFileStore(dir)
		if err != nil {
			return nil, err
		}
		s = fs
	}
	if cfg.Namespace != "" {
		s = store.Scoped(s, cfg.Namespace)
	}
	return s, nil
}

// libraryDir returns the file store directory: store.dir from the settings,
// or library/ under dataDir.
func (c *CLI) libraryDir() (string, error) {
	if dir := c.settings.Store.Dir; dir != "" {
		return dir, nil
	}
	base, err := dataDir()
	if err != nil {
		return "", fmt.Errorf("get data dir: %w", err)
	}
	return filepath.Join(base, "library"), nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/xformgraph/).
func configDir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// dataDir returns the data directory using XDG standard (~/.local/share/xformgraph/).
func dataDir() (string, error) {
	if home := os.Getenv("XDG_DATA_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// defaultSettingsPath returns config.toml inside configDir, or "" if the
// home directory is unknown.
func defaultSettingsPath() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}
