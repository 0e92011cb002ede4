package io

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/matzehuels/xformgraph/pkg/errors"
	"github.com/matzehuels/xformgraph/pkg/graph"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

// Document is the persisted form of a graph.
type Document struct {
	Xforms      []XformSpec      `json:"xforms" yaml:"xforms"`
	Connections []ConnectionSpec `json:"connections" yaml:"connections"`
}

// XformSpec describes one xform: enough for a registry to rebuild it.
type XformSpec struct {
	Name   string     `json:"name" yaml:"name"`
	Type   string     `json:"type" yaml:"type"`
	Config []Property `json:"config,omitempty" yaml:"config,omitempty"`
}

// Property is one configuration value. Type is STRING, FLOAT or INT, case
// insensitive. Value holds a string or a number.
type Property struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

// ConnectionSpec describes one link by xform and port names.
type ConnectionSpec struct {
	FromXform string `json:"from_xform" yaml:"from_xform"`
	FromPort  string `json:"from_port" yaml:"from_port"`
	ToXform   string `json:"to_xform" yaml:"to_xform"`
	ToPort    string `json:"to_port" yaml:"to_port"`
}

// Text renders the value in the textual form accepted by the registry.
// Integral numbers are written without a fractional part.
func (p Property) Text() (string, error) {
	switch v := p.Value.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return strconv.FormatInt(int64(v), 10), nil
		}
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case nil:
		return "", fmt.Errorf("property %s has no value", p.Name)
	default:
		return "", fmt.Errorf("property %s has unsupported value %v (%T)", p.Name, v, v)
	}
}

// Encode captures g as a document. Xforms are sorted by name and
// connections by output port; only set configuration values are written.
func Encode(g *graph.Graph) *Document {
	doc := &Document{
		Xforms:      make([]XformSpec, 0, g.Len()),
		Connections: make([]ConnectionSpec, 0),
	}
	for _, x := range g.Xforms() {
		spec := XformSpec{Name: x.Name(), Type: x.Type()}
		values := x.Config().Values()
		for _, pd := range x.Config().Descriptors() {
			v, ok := values[pd.Name]
			if !ok {
				continue
			}
			spec.Config = append(spec.Config, Property{Name: pd.Name, Type: pd.Type.String(), Value: v})
		}
		doc.Xforms = append(doc.Xforms, spec)
	}
	for _, c := range g.Connections() {
		doc.Connections = append(doc.Connections, ConnectionSpec{
			FromXform: c.From.Xform,
			FromPort:  c.From.Port,
			ToXform:   c.To.Xform,
			ToPort:    c.To.Port,
		})
	}
	return doc
}

// Validate checks the document's own consistency: names, property types
// and connection endpoints. It does not consult a registry. Every problem
// found is reported, combined into one INVALID_DOCUMENT error.
func (d *Document) Validate() error {
	var errs error
	names := make(map[string]bool, len(d.Xforms))
	for i, x := range d.Xforms {
		if err := errors.ValidateXformName(x.Name); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("xforms[%d]: %w", i, err))
		} else if names[x.Name] {
			errs = multierr.Append(errs, fmt.Errorf("xforms[%d]: duplicate name %s", i, x.Name))
		}
		names[x.Name] = true
		if x.Type == "" {
			errs = multierr.Append(errs, fmt.Errorf("xform %s: type is required", x.Name))
		}
		for _, p := range x.Config {
			if xform.ParsePropertyType(p.Type) == xform.PropertyUnknown {
				errs = multierr.Append(errs, fmt.Errorf("xform %s: property %s has unknown type %q", x.Name, p.Name, p.Type))
			}
			if _, err := p.Text(); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("xform %s: %w", x.Name, err))
			}
		}
	}
	for i, c := range d.Connections {
		for _, end := range []string{c.FromXform, c.ToXform} {
			if !names[end] {
				errs = multierr.Append(errs, fmt.Errorf("connections[%d]: unknown xform %q", i, end))
			}
		}
		if c.FromPort == "" || c.ToPort == "" {
			errs = multierr.Append(errs, fmt.Errorf("connections[%d]: port names are required", i))
		}
	}
	if errs != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, errs, "%d problem(s)", len(multierr.Errors(errs)))
	}
	return nil
}

// Build reconstructs a graph from the document. Each xform is made by reg
// from its type, name and configuration, initialized and added; then every
// connection is applied. Declaration order does not matter. On error every
// xform initialized so far is released.
func Build(d *Document, reg *xform.Registry, opts ...graph.Option) (g *graph.Graph, err error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var built []xform.Xform
	defer func() {
		if err != nil {
			release(built)
		}
	}()
	g = graph.New(opts...)
	for _, spec := range d.Xforms {
		conf := make(map[string]string, len(spec.Config))
		for _, p := range spec.Config {
			// Validate has already rejected values without a textual form.
			conf[p.Name], _ = p.Text()
		}
		x, err := reg.Make(spec.Type, spec.Name, conf)
		if err != nil {
			return nil, fmt.Errorf("xform %s: %w", spec.Name, err)
		}
		built = append(built, x)
		if err := x.Init(); err != nil {
			return nil, fmt.Errorf("xform %s: init: %w", spec.Name, err)
		}
		if err := g.AddXform(x); err != nil {
			return nil, fmt.Errorf("xform %s: %w", spec.Name, err)
		}
	}
	for _, c := range d.Connections {
		if err := g.AddConnection(c.FromXform, c.FromPort, c.ToXform, c.ToPort); err != nil {
			return nil, fmt.Errorf("connection %s:%s -> %s:%s: %w", c.FromXform, c.FromPort, c.ToXform, c.ToPort, err)
		}
	}
	return g, nil
}

func release(xs []xform.Xform) {
	for _, x := range xs {
		if r, ok := x.(xform.Releaser); ok {
			r.Release()
		}
	}
}

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension: .json, .yaml
// or .yml.
func FormatFromPath(path string) (Format, error) {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return "", errors.New(errors.ErrCodeInvalidDocument, "%s: no file extension", path)
	}
	switch strings.ToLower(path[i+1:]) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidDocument, "%s: unsupported extension %q", path, path[i:])
	}
}
