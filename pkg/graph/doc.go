// Package graph implements the xform graph: a set of named xforms, the
// links between their ports, and incremental evaluation bookkeeping.
//
// # Overview
//
// A [Graph] owns its xforms. Output ports are linked to input ports with
// [Graph.Connect]; each input has at most one source and each output at
// most one sink, a new link replacing whatever occupied either end. Links
// that would close a cycle are rejected, so the graph is always a DAG.
//
//	g := graph.New()
//	_ = g.AddXform(load)
//	_ = g.AddXform(split)
//	_ = g.AddConnection("load", "image", "split", "image")
//	rep := g.Evaluate(ctx)
//
// # States
//
// After every structural change each xform is classified, in dependency
// order, as one of:
//
//   - [StateUnconfigured]: its own configuration is incomplete
//   - [StateInvalid]: a required input is unconnected or fed by an
//     unconfigured or invalid xform
//   - [StateStale]: runnable, but an upstream xform was evaluated at least
//     as recently as it was
//   - [StateGood]: up to date
//
// [StateError] is only ever set by evaluation.
//
// # Evaluation
//
// [Graph.Evaluate] clears the results cache and applies every GOOD or STALE
// xform once, in dependency order. A failed apply puts the xform in
// StateError and blocks its consumers for the rest of the pass; other
// branches still run. Results are read back with [Graph.ResultAt].
//
// # Concurrency
//
// Graph is not safe for concurrent use. Callers sharing a graph between
// goroutines must serialize access.
package graph
