// Package nodelink renders xform graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT, then render it:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//	png, err := nodelink.RenderPNG(dot)
//
// # Appearance
//
// Each xform is a rounded box labelled with its name and type, filled with
// the colour of its [graph.State]: green for GOOD, yellow for STALE, red
// for ERROR, orange for INVALID and grey for UNCONFIGURED. Each link is an
// arrow from producer to consumer labelled "out → in" with the two port
// names. With Options.Detailed the label also lists the set configuration
// values.
//
// The layout runs left to right (rankdir=LR), following the data flow.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering; no external Graphviz install is needed.
package nodelink
