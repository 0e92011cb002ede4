// Package pkg provides the core libraries for xformgraph image transform graphs.
//
// # Overview
//
// An xform is a named node with typed input and output ports and a small
// typed configuration. Xforms are wired output-to-input into an acyclic
// graph, and evaluating the graph applies every runnable xform once,
// producers before consumers. The pkg directory is organized into:
//
//  1. [xform] - The node contract: ports, configuration, apply status, registry
//  2. [graph] - Connections, ordering, the state machine and evaluation
//  3. [xforms] and [raster] - The built-in image transforms and their pixels
//  4. [io] - JSON and YAML graph documents
//  5. [store] - Named graph libraries on disk or in Redis
//  6. [render/nodelink] - Graphviz views of a graph
//  7. [observability] and [errors] - Hooks, metrics and coded errors
//
// # Architecture
//
// The typical data flow through xformgraph:
//
//	Graph document (JSON/YAML)
//	         ↓
//	    [io] package (decode, validate, build through a registry)
//	         ↓
//	    [graph] package (connect, refresh states, evaluate)
//	         ↓
//	    [xforms] package (apply, textures via [raster])
//	         ↓
//	    Images on disk, results, DOT/SVG views
//
// # Quick Start
//
//	textures := raster.NewTextureStore()
//	reg := xforms.NewRegistry(textures)
//
//	g, err := io.ImportFile("pipeline.yaml", reg)
//	if err != nil {
//	    return err
//	}
//	rep := g.Evaluate(ctx)
//	for _, e := range rep.Errors {
//	    fmt.Println(e.Xform, e.Status, e.Message)
//	}
//
// See the individual packages for details.
package pkg
