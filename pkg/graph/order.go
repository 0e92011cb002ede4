package graph

import (
	"maps"
	"slices"

	"github.com/matzehuels/xformgraph/pkg/errors"
)

// TopologicalOrder orders nodes so that every node precedes the nodes
// downstream of it. Roots are visited in the order given; downstream
// returns the direct consumers of a node.
//
// The order is built by depth-first search with white/gray/black marks,
// each node being placed in front of everything already finished. Reaching
// a gray node again means the graph has a cycle, reported as
// GRAPH_HAS_CYCLE.
func TopologicalOrder(nodes []string, downstream func(string) []string) ([]string, error) {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(nodes))
	finished := make([]string, 0, len(nodes))
	var cycleAt string

	var visit func(n string) bool
	visit = func(n string) bool {
		switch color[n] {
		case black:
			return true
		case gray:
			cycleAt = n
			return false
		}
		color[n] = gray
		for _, d := range downstream(n) {
			if !visit(d) {
				return false
			}
		}
		color[n] = black
		finished = append(finished, n)
		return true
	}

	for _, n := range nodes {
		if color[n] == white && !visit(n) {
			return nil, errors.New(errors.ErrCodeGraphHasCycle, "cycle in graph through %s", cycleAt)
		}
	}
	slices.Reverse(finished)
	return finished, nil
}

// Order returns the xform names in dependency order: every xform comes
// before the xforms it feeds.
func (g *Graph) Order() []string { return slices.Clone(g.order) }

// updateOrder recomputes the dependency order. The previous order is kept
// if the graph has a cycle.
func (g *Graph) updateOrder() error {
	order, err := TopologicalOrder(slices.Sorted(maps.Keys(g.xforms)), g.downstream)
	if err != nil {
		return err
	}
	g.order = order
	return nil
}
