package api

import (
	"sync"

	"github.com/matzehuels/xformgraph/pkg/graph"
	pkgio "github.com/matzehuels/xformgraph/pkg/io"
	"github.com/matzehuels/xformgraph/pkg/raster"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

// Session serializes access to one graph.
type Session struct {
	mu       sync.Mutex
	graph    *graph.Graph
	registry *xform.Registry
	textures *raster.TextureStore
	opts     []graph.Option
}

// NewSession wraps g. Graphs rebuilt by [Session.Replace] are created with
// opts.
func NewSession(g *graph.Graph, reg *xform.Registry, textures *raster.TextureStore, opts ...graph.Option) *Session {
	return &Session{graph: g, registry: reg, textures: textures, opts: opts}
}

// Do runs fn with the session locked.
func (s *Session) Do(fn func(g *graph.Graph) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.graph)
}

// Replace builds a graph from doc and swaps it in. The old graph's xforms
// are deleted so their textures are released. On error the current graph
// is kept.
func (s *Session) Replace(doc *pkgio.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := pkgio.Build(doc, s.registry, s.opts...)
	if err != nil {
		return err
	}
	for _, name := range s.graph.Order() {
		_ = s.graph.DeleteXform(name)
	}
	s.graph = g
	return nil
}

// Registry returns the registry xforms are made from.
func (s *Session) Registry() *xform.Registry { return s.registry }

// Textures returns the texture store backing results.
func (s *Session) Textures() *raster.TextureStore { return s.textures }
