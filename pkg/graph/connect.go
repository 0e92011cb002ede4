package graph

import (
	"maps"
	"slices"

	"github.com/matzehuels/xformgraph/pkg/errors"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

// Connect links the output port from to the input port to.
//
// Both ports must exist and be compatible. Any link already leaving from,
// and any link already entering to, is replaced. If the new link would
// close a cycle the graph is left unchanged and GRAPH_HAS_CYCLE is returned.
func (g *Graph) Connect(from xform.OutputPort, to xform.InputPort) error {
	return g.mutated("connect", g.connect(from, to))
}

// AddConnection is Connect with the ports given by name.
func (g *Graph) AddConnection(fromXform, fromPort, toXform, toPort string) error {
	return g.Connect(
		xform.OutputPort{Xform: fromXform, Port: fromPort},
		xform.InputPort{Xform: toXform, Port: toPort},
	)
}

func (g *Graph) connect(from xform.OutputPort, to xform.InputPort) error {
	fromPD, err := g.outputDescriptor(from)
	if err != nil {
		return err
	}
	toPD, err := g.inputDescriptor(to)
	if err != nil {
		return err
	}
	if !toPD.IsCompatible(fromPD) {
		return errors.New(errors.ErrCodePortsIncompatible,
			"ports %s (%s) and %s (%s) are incompatible", from, fromPD.DataType, to, toPD.DataType)
	}

	oldSink, hadSink := g.links.removeOutput(from)
	if hadSink {
		g.logger.Info("removing existing connection", "from", from, "to", oldSink)
	}
	oldSource, hadSource := g.links.removeInput(to)
	if hadSource {
		g.logger.Info("removing existing connection", "from", oldSource, "to", to)
	}
	g.links.add(from, to)

	if err := g.updateOrder(); err != nil {
		g.links.removeInput(to)
		if hadSink {
			g.links.add(from, oldSink)
		}
		if hadSource {
			g.links.add(oldSource, to)
		}
		if rerr := g.updateOrder(); rerr != nil {
			return errors.Wrap(errors.ErrCodeInternal, rerr, "restore order after rejected connection")
		}
		return errors.Wrap(errors.ErrCodeGraphHasCycle, err, "connecting %s to %s", from, to)
	}
	g.refreshAll()
	return nil
}

// Disconnect removes the link into the input port in. A port that is not
// connected is logged and ignored.
func (g *Graph) Disconnect(in xform.InputPort) error {
	if _, err := g.inputDescriptor(in); err != nil {
		return g.mutated("disconnect", err)
	}
	if _, ok := g.links.removeInput(in); !ok {
		g.logger.Warn("port is not connected", "port", in)
		return nil
	}
	g.afterDisconnect()
	return g.mutated("disconnect", nil)
}

// DisconnectLink removes the link out→in. If in is not connected, or is fed
// by a different output, the call is logged and ignored.
func (g *Graph) DisconnectLink(out xform.OutputPort, in xform.InputPort) error {
	if _, err := g.inputDescriptor(in); err != nil {
		return g.mutated("disconnect", err)
	}
	src, ok := g.links.source(in)
	if !ok {
		g.logger.Warn("port is not connected", "port", in)
		return nil
	}
	if src != out {
		g.logger.Warn("ports are not connected to each other", "from", out, "to", in, "source", src)
		return nil
	}
	g.links.removeInput(in)
	g.afterDisconnect()
	return g.mutated("disconnect", nil)
}

func (g *Graph) afterDisconnect() {
	// Removing a link cannot create a cycle.
	_ = g.updateOrder()
	g.refreshAll()
}

// Connections returns every link ordered by output port.
func (g *Graph) Connections() []Connection { return g.links.all() }

// ConnectionFrom returns the input port fed by out.
func (g *Graph) ConnectionFrom(out xform.OutputPort) (xform.InputPort, bool) {
	return g.links.sink(out)
}

// ConnectionTo returns the output port feeding in.
func (g *Graph) ConnectionTo(in xform.InputPort) (xform.OutputPort, bool) {
	return g.links.source(in)
}

// IsInputConnected reports whether in has a source. The port must exist.
func (g *Graph) IsInputConnected(in xform.InputPort) (bool, error) {
	if _, err := g.inputDescriptor(in); err != nil {
		return false, err
	}
	_, ok := g.links.source(in)
	return ok, nil
}

// IsOutputConnected reports whether out feeds an input. The port must exist.
func (g *Graph) IsOutputConnected(out xform.OutputPort) (bool, error) {
	if _, err := g.outputDescriptor(out); err != nil {
		return false, err
	}
	_, ok := g.links.sink(out)
	return ok, nil
}

// Dependencies returns the sorted names of the xforms feeding any input of
// the named xform.
func (g *Graph) Dependencies(name string) []string {
	x, ok := g.xforms[name]
	if !ok {
		return nil
	}
	deps := make(map[string]struct{})
	for _, p := range x.InputPorts() {
		if src, ok := g.links.source(xform.InputPort{Xform: name, Port: p.Name}); ok {
			deps[src.Xform] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(deps))
}

// downstream returns the sorted names of xforms fed by the named xform.
func (g *Graph) downstream(name string) []string {
	x, ok := g.xforms[name]
	if !ok {
		return nil
	}
	var out []string
	for _, p := range x.OutputPorts() {
		if in, ok := g.links.sink(xform.OutputPort{Xform: name, Port: p.Name}); ok {
			out = append(out, in.Xform)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
