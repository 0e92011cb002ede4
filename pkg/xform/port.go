package xform

import (
	"cmp"

	"github.com/matzehuels/xformgraph/pkg/errors"
)

// AnyType is the wildcard data type. A port declaring it is compatible with
// every port on the other side of a connection.
const AnyType = "any"

// Common data types carried between ports.
const (
	TypeImage   = "image"
	TypeChannel = "channel"
)

// OutputPortDescriptor declares an output port on an xform.
type OutputPortDescriptor struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
}

// InputPortDescriptor declares an input port on an xform. Required inputs
// must be connected before the xform can be evaluated.
type InputPortDescriptor struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
	Required bool   `json:"required"`
}

// IsCompatible reports whether a link from out into this input is allowed.
// Data types must match exactly unless either side declares [AnyType].
func (in InputPortDescriptor) IsCompatible(out OutputPortDescriptor) bool {
	if in.DataType == AnyType || out.DataType == AnyType {
		return true
	}
	return in.DataType == out.DataType
}

// OutputPort identifies an output port of a named xform within a graph.
type OutputPort struct {
	Xform string `json:"xform"`
	Port  string `json:"port"`
}

// InputPort identifies an input port of a named xform within a graph.
type InputPort struct {
	Xform string `json:"xform"`
	Port  string `json:"port"`
}

// String renders the port as "xform:port".
func (p OutputPort) String() string { return p.Xform + ":" + p.Port }

// String renders the port as "xform:port".
func (p InputPort) String() string { return p.Xform + ":" + p.Port }

// Compare orders output ports by xform name, then port name.
func (p OutputPort) Compare(o OutputPort) int {
	if c := cmp.Compare(p.Xform, o.Xform); c != 0 {
		return c
	}
	return cmp.Compare(p.Port, o.Port)
}

// Compare orders input ports by xform name, then port name.
func (p InputPort) Compare(o InputPort) int {
	if c := cmp.Compare(p.Xform, o.Xform); c != 0 {
		return c
	}
	return cmp.Compare(p.Port, o.Port)
}

// ParseOutputPort parses an "xform:port" reference.
func ParseOutputPort(ref string) (OutputPort, error) {
	x, p, err := errors.ValidatePortRef(ref)
	if err != nil {
		return OutputPort{}, err
	}
	return OutputPort{Xform: x, Port: p}, nil
}

// ParseInputPort parses an "xform:port" reference.
func ParseInputPort(ref string) (InputPort, error) {
	x, p, err := errors.ValidatePortRef(ref)
	if err != nil {
		return InputPort{}, err
	}
	return InputPort{Xform: x, Port: p}, nil
}
