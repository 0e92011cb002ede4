package graph

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"

	"github.com/matzehuels/xformgraph/pkg/errors"
)

func TestTopologicalOrderRandomDAGs(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for trial := range 50 {
		n := 2 + rng.IntN(12)
		nodes := make([]string, n)
		for i := range nodes {
			nodes[i] = "n" + strconv.Itoa(i)
		}
		// Edges only go from lower to higher index, so the graph is acyclic.
		edges := map[string][]string{}
		for i := range n {
			for j := i + 1; j < n; j++ {
				if rng.IntN(3) == 0 {
					edges[nodes[i]] = append(edges[nodes[i]], nodes[j])
				}
			}
		}
		shuffled := slices.Clone(nodes)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		order, err := TopologicalOrder(shuffled, func(s string) []string { return edges[s] })
		if err != nil {
			t.Fatalf("trial %d: unexpected error %v", trial, err)
		}
		if len(order) != n {
			t.Fatalf("trial %d: order has %d nodes, want %d", trial, len(order), n)
		}
		pos := map[string]int{}
		for i, name := range order {
			pos[name] = i
		}
		for from, tos := range edges {
			for _, to := range tos {
				if pos[from] >= pos[to] {
					t.Errorf("trial %d: %s at %d does not precede %s at %d", trial, from, pos[from], to, pos[to])
				}
			}
		}
	}
}

func TestTopologicalOrderCycle(t *testing.T) {
	edges := map[string][]string{"a": {"b"}, "b": {"c"}, "c": {"a"}, "d": nil}
	_, err := TopologicalOrder([]string{"d", "a", "b", "c"}, func(s string) []string { return edges[s] })
	if !errors.Is(err, errors.ErrCodeGraphHasCycle) {
		t.Errorf("TopologicalOrder = %v, want GRAPH_HAS_CYCLE", err)
	}
}

func TestGraphOrder(t *testing.T) {
	g := splitGraph(t)
	order := g.Order()
	pos := map[string]int{}
	for i, n := range order {
		pos[n] = i
	}
	for _, c := range g.Connections() {
		if pos[c.From.Xform] >= pos[c.To.Xform] {
			t.Errorf("%s comes after %s", c.From.Xform, c.To.Xform)
		}
	}

	order[0] = "mutated"
	if g.Order()[0] == "mutated" {
		t.Error("Order() must return a copy")
	}
}
