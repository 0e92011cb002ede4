package graph

import (
	"slices"

	"github.com/matzehuels/xformgraph/pkg/xform"
)

// Connection is a directed link from an output port to an input port.
type Connection struct {
	From xform.OutputPort `json:"from"`
	To   xform.InputPort  `json:"to"`
}

// links is the graph's connection index. Each input port has at most one
// source and each output port drives at most one sink. The input→output map
// is authoritative; the reverse map is only ever written by the same
// methods, so both directions agree after every call.
type links struct {
	to   map[xform.InputPort]xform.OutputPort
	from map[xform.OutputPort]xform.InputPort
}

func newLinks() *links {
	return &links{
		to:   make(map[xform.InputPort]xform.OutputPort),
		from: make(map[xform.OutputPort]xform.InputPort),
	}
}

func (l *links) source(in xform.InputPort) (xform.OutputPort, bool) {
	out, ok := l.to[in]
	return out, ok
}

func (l *links) sink(out xform.OutputPort) (xform.InputPort, bool) {
	in, ok := l.from[out]
	return in, ok
}

// add installs out→in. Callers must have freed both ports first.
func (l *links) add(out xform.OutputPort, in xform.InputPort) {
	l.to[in] = out
	l.from[out] = in
}

func (l *links) removeInput(in xform.InputPort) (xform.OutputPort, bool) {
	out, ok := l.to[in]
	if !ok {
		return xform.OutputPort{}, false
	}
	delete(l.to, in)
	delete(l.from, out)
	return out, true
}

func (l *links) removeOutput(out xform.OutputPort) (xform.InputPort, bool) {
	in, ok := l.from[out]
	if !ok {
		return xform.InputPort{}, false
	}
	delete(l.from, out)
	delete(l.to, in)
	return in, true
}

// removeXform drops every link with name as source or sink and returns them.
func (l *links) removeXform(name string) []Connection {
	var removed []Connection
	for in, out := range l.to {
		if in.Xform == name || out.Xform == name {
			removed = append(removed, Connection{From: out, To: in})
		}
	}
	for _, c := range removed {
		l.removeInput(c.To)
	}
	return removed
}

// all returns every link ordered by output port.
func (l *links) all() []Connection {
	conns := make([]Connection, 0, len(l.from))
	for out, in := range l.from {
		conns = append(conns, Connection{From: out, To: in})
	}
	slices.SortFunc(conns, func(a, b Connection) int { return a.From.Compare(b.From) })
	return conns
}

func (l *links) len() int { return len(l.to) }
