// Package render groups the visual outputs of xformgraph.
//
// The [nodelink] subpackage draws an xform graph as a node-link diagram
// with Graphviz, colouring each xform by its evaluation state:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// [nodelink]: github.com/matzehuels/xformgraph/pkg/render/nodelink
package render
