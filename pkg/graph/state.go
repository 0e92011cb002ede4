package graph

import (
	"fmt"
	"maps"

	"github.com/matzehuels/xformgraph/pkg/xform"
)

// State classifies an xform's readiness for evaluation.
type State int

const (
	// StateUnconfigured means the xform's own configuration is incomplete.
	StateUnconfigured State = iota
	// StateInvalid means a required input is unconnected, or fed by an
	// xform that is itself unconfigured or invalid.
	StateInvalid
	// StateStale means the xform can run but an upstream xform was
	// evaluated at least as recently as it was.
	StateStale
	// StateError means the last apply failed.
	StateError
	// StateGood means the xform's last output is up to date.
	StateGood
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "UNCONFIGURED"
	case StateInvalid:
		return "INVALID"
	case StateStale:
		return "STALE"
	case StateError:
		return "ERROR"
	case StateGood:
		return "GOOD"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a state name written by MarshalText.
func (s *State) UnmarshalText(b []byte) error {
	for c := StateUnconfigured; c <= StateGood; c++ {
		if c.String() == string(b) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", b)
}

// StateFor returns the state of the named xform.
func (g *Graph) StateFor(name string) (State, error) {
	s, ok := g.states[name]
	if !ok {
		return 0, noSuchXform(name)
	}
	return s, nil
}

// States returns a snapshot of every xform's state.
func (g *Graph) States() map[string]State { return maps.Clone(g.states) }

// EvaluationTime returns the tick at which the named xform was last applied
// successfully, 0 if never.
func (g *Graph) EvaluationTime(name string) (uint64, error) {
	t, ok := g.times[name]
	if !ok {
		return 0, noSuchXform(name)
	}
	return t, nil
}

// RefreshStates reclassifies every xform. Call it after changing an xform's
// configuration in place, which the graph cannot observe.
func (g *Graph) RefreshStates() { g.refreshAll() }

func (g *Graph) refreshAll() {
	for _, n := range g.order {
		g.refreshState(n)
	}
}

// refreshState classifies one xform from its config, its required inputs
// and the current states of the xforms feeding them. Upstream xforms must
// already be up to date.
func (g *Graph) refreshState(name string) {
	x := g.xforms[name]
	if !x.IsConfigured() {
		g.states[name] = StateUnconfigured
		return
	}

	var upstream []string
	for _, p := range x.InputPorts() {
		if !p.Required {
			continue
		}
		src, ok := g.links.source(xform.InputPort{Xform: name, Port: p.Name})
		if !ok {
			g.states[name] = StateInvalid
			return
		}
		upstream = append(upstream, src.Xform)
	}

	for _, u := range upstream {
		if s := g.states[u]; s == StateUnconfigured || s == StateInvalid {
			g.states[name] = StateInvalid
			return
		}
	}
	for _, u := range upstream {
		// Equal times count as stale: xforms added together both start at 0.
		if g.states[u] == StateStale || g.times[u] >= g.times[name] {
			g.states[name] = StateStale
			return
		}
	}
	g.states[name] = StateGood
}
