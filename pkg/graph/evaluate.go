package graph

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/xformgraph/pkg/xform"
)

// Report summarizes one evaluation pass.
type Report struct {
	RunID string `json:"run_id"`
	// OK is true whenever the pass ran to completion, which is always:
	// per-xform failures are listed in Failed and Errors instead.
	OK bool `json:"ok"`
	// Applied lists xforms applied successfully, in evaluation order.
	Applied []string `json:"applied"`
	// Failed lists xforms whose apply failed. They are now in StateError.
	Failed []string `json:"failed"`
	// Blocked lists xforms not applied because an upstream xform failed,
	// was skipped or was itself blocked. Their state is unchanged.
	Blocked []string `json:"blocked"`
	// Skipped lists xforms that were neither GOOD nor STALE.
	Skipped  []string            `json:"skipped"`
	Errors   []*xform.ApplyError `json:"errors"`
	Duration time.Duration       `json:"duration"`
}

// Evaluate applies every GOOD or STALE xform once, producers before
// consumers, and caches the outputs. The results of the previous pass are
// discarded first.
//
// A failing xform moves to StateError and blocks everything downstream of
// it; independent branches still run. Evaluate never aborts for a
// per-xform failure.
func (g *Graph) Evaluate(ctx context.Context) *Report {
	start := time.Now()
	rep := &Report{RunID: uuid.NewString(), OK: true}
	logger := g.logger.With("run", rep.RunID[:8])
	hooks := g.hook()
	hooks.OnEvaluateStart(ctx, rep.RunID, len(g.order))

	clear(g.results)
	applied := make(map[string]bool, len(g.order))

	for _, name := range g.order {
		x := g.xforms[name]
		if s := g.states[name]; s != StateGood && s != StateStale {
			rep.Skipped = append(rep.Skipped, name)
			continue
		}

		blocked := false
		for _, dep := range g.Dependencies(name) {
			if !applied[dep] {
				blocked = true
				break
			}
		}
		if blocked {
			logger.Debug("skipping xform with failed dependency", "xform", name)
			rep.Blocked = append(rep.Blocked, name)
			continue
		}

		inputs := make(xform.Values)
		for _, p := range x.InputPorts() {
			src, ok := g.links.source(xform.InputPort{Xform: name, Port: p.Name})
			if !ok {
				continue
			}
			if r, ok := g.results[src]; ok {
				inputs[p.Name] = r
			}
		}

		t0 := time.Now()
		out, aerr := xform.Apply(x, inputs)
		if aerr != nil {
			g.states[name] = StateError
			logger.Error("xform failed", "xform", name, "code", int(aerr.Status), "status", aerr.Status, "msg", aerr.Message)
			rep.Failed = append(rep.Failed, name)
			rep.Errors = append(rep.Errors, aerr)
			hooks.OnApply(ctx, rep.RunID, x.Type(), int(aerr.Status), time.Since(t0))
			continue
		}
		for port, r := range out {
			g.results[xform.OutputPort{Xform: name, Port: port}] = r
		}
		g.tick++
		g.times[name] = g.tick
		g.states[name] = StateGood
		applied[name] = true
		rep.Applied = append(rep.Applied, name)
		hooks.OnApply(ctx, rep.RunID, x.Type(), int(xform.StatusOK), time.Since(t0))
	}

	rep.Duration = time.Since(start)
	logger.Debug("evaluation complete",
		"applied", len(rep.Applied),
		"failed", len(rep.Failed),
		"blocked", len(rep.Blocked),
		"skipped", len(rep.Skipped),
		"duration", rep.Duration)
	hooks.OnEvaluateComplete(ctx, rep.RunID, len(rep.Applied), len(rep.Failed)+len(rep.Blocked), len(rep.Skipped), rep.Duration)
	return rep
}

// ResultAt returns the result cached for out by the last evaluation. A
// missing result, including one for an xform deleted since, is logged and
// reported as nil, false.
func (g *Graph) ResultAt(out xform.OutputPort) (xform.Result, bool) {
	r, ok := g.results[out]
	if !ok {
		g.logger.Warn("no result", "port", out)
		return nil, false
	}
	return r, true
}
