package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/xformgraph/pkg/graph"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the set configuration values to node labels.
	// When false, only the name and type are shown.
	Detailed bool
	// HideStates renders every node white instead of by state.
	HideStates bool
}

// stateColors maps each state to its fill colour.
var stateColors = map[graph.State]string{
	graph.StateUnconfigured: "lightgrey",
	graph.StateInvalid:      "orange",
	graph.StateStale:        "lightyellow",
	graph.StateError:        "salmon",
	graph.StateGood:         "palegreen",
}

// ToDOT converts an xform graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	states := g.States()
	for _, x := range g.Xforms() {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(x, states[x.Name()], opts.Detailed))}
		if !opts.HideStates {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", stateColors[states[x.Name()]]))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", x.Name(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range g.Connections() {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", c.From.Xform, c.To.Xform, c.From.Port+" → "+c.To.Port)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(x xform.Xform, s graph.State, detailed bool) string {
	label := x.Name() + "\n" + x.Type()
	if !detailed {
		return label
	}
	parts := []string{"state: " + s.String()}
	conf := x.Config()
	values := conf.Values()
	for _, k := range slices.Sorted(maps.Keys(values)) {
		v, _ := conf.Text(k)
		parts = append(parts, fmt.Sprintf("%s: %s", k, v))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	out, err := render(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from its
// viewBox instead of the point sizes Graphviz emits.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
