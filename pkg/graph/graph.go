package graph

import (
	"context"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/xformgraph/pkg/errors"
	"github.com/matzehuels/xformgraph/pkg/observability"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

// Graph owns a set of xforms, the links between their ports, each xform's
// state and last evaluation time, and the results of the last evaluation.
//
// The zero value is not usable - use New to create a Graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	xforms  map[string]xform.Xform
	links   *links
	states  map[string]State
	times   map[string]uint64
	results map[xform.OutputPort]xform.Result
	order   []string
	tick    uint64

	logger *log.Logger
	hooks  observability.GraphHooks
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for connection and evaluation messages.
func WithLogger(l *log.Logger) Option {
	return func(g *Graph) { g.logger = l }
}

// WithHooks sets the hooks notified of evaluations and mutations. By
// default the globally registered observability.Graph hooks are used.
func WithHooks(h observability.GraphHooks) Option {
	return func(g *Graph) { g.hooks = h }
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		xforms:  make(map[string]xform.Xform),
		links:   newLinks(),
		states:  make(map[string]State),
		times:   make(map[string]uint64),
		results: make(map[xform.OutputPort]xform.Result),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.Default()
	}
	return g
}

func (g *Graph) hook() observability.GraphHooks {
	if g.hooks != nil {
		return g.hooks
	}
	return observability.Graph()
}

func (g *Graph) mutated(op string, err error) error {
	g.hook().OnMutation(context.Background(), op, err)
	return err
}

// AddXform adds x to the graph and classifies its initial state.
// Returns GENERAL_FAILURE for a nil xform or XFORM_EXISTS for a name
// already in use.
func (g *Graph) AddXform(x xform.Xform) error {
	if x == nil {
		return g.mutated("add", errors.New(errors.ErrCodeGeneralFailure, "xform is nil"))
	}
	if _, exists := g.xforms[x.Name()]; exists {
		return g.mutated("add", errors.New(errors.ErrCodeXformExists, "xform %s already in graph", x.Name()))
	}
	g.xforms[x.Name()] = x
	g.times[x.Name()] = 0
	if err := g.updateOrder(); err != nil {
		// Unreachable: a node without links cannot close a cycle.
		delete(g.xforms, x.Name())
		delete(g.times, x.Name())
		return g.mutated("add", err)
	}
	g.refreshState(x.Name())
	return g.mutated("add", nil)
}

// DeleteXform removes the named xform, every link into or out of it and
// its cached results, releases its backend resources, then refreshes the
// state of every remaining xform.
func (g *Graph) DeleteXform(name string) error {
	x, ok := g.xforms[name]
	if !ok {
		return g.mutated("delete", noSuchXform(name))
	}

	for _, c := range g.links.removeXform(name) {
		g.logger.Debug("removed connection", "from", c.From, "to", c.To)
	}
	delete(g.states, name)
	delete(g.times, name)
	for p := range g.results {
		if p.Xform == name {
			delete(g.results, p)
		}
	}
	if r, ok := x.(xform.Releaser); ok {
		r.Release()
	}
	delete(g.xforms, name)

	if err := g.updateOrder(); err != nil {
		return g.mutated("delete", err)
	}
	g.refreshAll()
	return g.mutated("delete", nil)
}

// Xform returns the named xform.
func (g *Graph) Xform(name string) (xform.Xform, bool) {
	x, ok := g.xforms[name]
	return x, ok
}

// Xforms returns every xform sorted by name.
func (g *Graph) Xforms() []xform.Xform {
	out := make([]xform.Xform, 0, len(g.xforms))
	for _, n := range slices.Sorted(maps.Keys(g.xforms)) {
		out = append(out, g.xforms[n])
	}
	return out
}

// Len returns the number of xforms in the graph.
func (g *Graph) Len() int { return len(g.xforms) }

func noSuchXform(name string) error {
	return errors.New(errors.ErrCodeNoSuchXform, "no such xform: %s", name)
}

func (g *Graph) lookup(name string) (xform.Xform, error) {
	x, ok := g.xforms[name]
	if !ok {
		return nil, noSuchXform(name)
	}
	return x, nil
}

func (g *Graph) outputDescriptor(p xform.OutputPort) (xform.OutputPortDescriptor, error) {
	x, err := g.lookup(p.Xform)
	if err != nil {
		return xform.OutputPortDescriptor{}, err
	}
	pd, ok := x.OutputPort(p.Port)
	if !ok {
		return pd, errors.New(errors.ErrCodeNoSuchOutputPort, "no output port %s on xform %s", p.Port, p.Xform)
	}
	return pd, nil
}

func (g *Graph) inputDescriptor(p xform.InputPort) (xform.InputPortDescriptor, error) {
	x, err := g.lookup(p.Xform)
	if err != nil {
		return xform.InputPortDescriptor{}, err
	}
	pd, ok := x.InputPort(p.Port)
	if !ok {
		return pd, errors.New(errors.ErrCodeNoSuchInputPort, "no input port %s on xform %s", p.Port, p.Xform)
	}
	return pd, nil
}
