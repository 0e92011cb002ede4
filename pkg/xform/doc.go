// Package xform defines the node model of an xform graph.
//
// # Overview
//
// An xform ("transform") is a processing node with named input ports,
// named output ports and a typed configuration. Xforms are created detached
// from any graph through a [Registry], initialized with [Xform.Init], then
// handed to a graph which owns them until deletion.
//
// # Ports
//
// Ports are declared with [InputPortDescriptor] and [OutputPortDescriptor].
// An input accepts a link from an output when their data types are equal,
// or when either side declares the wildcard [AnyType]. Within a graph, ports
// are addressed as [OutputPort] and [InputPort], rendered "xform:port".
//
// # Configuration
//
// [Config] is a property bag whose names and types are fixed when the xform
// is constructed. Setting an unknown property, or a value of the wrong type,
// is silently ignored. Node implementations usually read their parameters
// with [Config.Decode]:
//
//	var p struct {
//	    Sigma float64 `mapstructure:"sigma"`
//	}
//	p.Sigma = 2.4
//	if err := x.Config().Decode(&p); err != nil { ... }
//
// # Applying
//
// [Apply] runs one xform against a set of input [Values]. It never panics;
// failures are reported as [*ApplyError] with a [Status] code.
//
// # Results
//
// [Result] is a closed set of payload kinds. Today the only kind is
// [Texture], a handle to an image owned by the rendering backend.
package xform
