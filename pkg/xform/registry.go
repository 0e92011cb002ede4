package xform

import (
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/xformgraph/pkg/errors"
)

// Constructor creates a detached, uninitialized xform with the given name.
type Constructor func(name string) Xform

// TypeInfo describes the ports and properties of an xform type.
type TypeInfo struct {
	Type       string                 `json:"type"`
	Inputs     []InputPortDescriptor  `json:"inputs"`
	Outputs    []OutputPortDescriptor `json:"outputs"`
	Properties []PropertyDescriptor   `json:"properties"`
}

// Registry creates xforms by type tag. It is populated explicitly at
// startup and is not safe for concurrent registration.
type Registry struct {
	ctors    map[string]Constructor
	counters map[string]int
	logger   *log.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ctors:    make(map[string]Constructor),
		counters: make(map[string]int),
	}
}

// SetLogger sets the logger handed to every xform the registry makes.
func (r *Registry) SetLogger(l *log.Logger) { r.logger = l }

func (r *Registry) log() *log.Logger {
	if r.logger == nil {
		return log.Default()
	}
	return r.logger
}

// Register adds a constructor for typ. Registering a type twice is an error
// and leaves the first constructor in place.
func (r *Registry) Register(typ string, ctor Constructor) error {
	if typ == "" || ctor == nil {
		return errors.New(errors.ErrCodeGeneralFailure, "register: type and constructor are required")
	}
	if _, ok := r.ctors[typ]; ok {
		r.log().Error("xform type already registered", "type", typ)
		return errors.New(errors.ErrCodeGeneralFailure, "xform type %s is already registered", typ)
	}
	r.ctors[typ] = ctor
	return nil
}

// Has reports whether typ is registered.
func (r *Registry) Has(typ string) bool {
	_, ok := r.ctors[typ]
	return ok
}

// Types returns the registered type tags in sorted order.
func (r *Registry) Types() []string {
	return slices.Sorted(maps.Keys(r.ctors))
}

// Make creates an xform of type typ. An empty name is replaced with
// "{typ}_{n}" using a per-type counter starting at 0. Each conf entry is
// parsed according to the declared property type; unknown properties are
// ignored.
func (r *Registry) Make(typ, name string, conf map[string]string) (Xform, error) {
	ctor, ok := r.ctors[typ]
	if !ok {
		r.log().Error("unrecognised xform type", "type", typ)
		return nil, errors.New(errors.ErrCodeUnknownType, "unrecognised xform type %s", typ)
	}
	if name == "" {
		name = fmt.Sprintf("%s_%d", typ, r.counters[typ])
		r.counters[typ]++
	}
	if err := errors.ValidateXformName(name); err != nil {
		return nil, err
	}

	x := ctor(name)
	if x == nil {
		return nil, errors.New(errors.ErrCodeInternal, "constructor for %s returned nil", typ)
	}
	if r.logger != nil {
		if s, ok := x.(interface{ SetLogger(*log.Logger) }); ok {
			s.SetLogger(r.logger)
		}
	}

	for _, k := range slices.Sorted(maps.Keys(conf)) {
		if err := x.Config().Parse(k, conf[k]); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Describe returns the ports and properties of typ without advancing the
// naming counter.
func (r *Registry) Describe(typ string) (TypeInfo, error) {
	ctor, ok := r.ctors[typ]
	if !ok {
		return TypeInfo{}, errors.New(errors.ErrCodeUnknownType, "unrecognised xform type %s", typ)
	}
	x := ctor(typ)
	return TypeInfo{
		Type:       typ,
		Inputs:     x.InputPorts(),
		Outputs:    x.OutputPorts(),
		Properties: x.Config().Descriptors(),
	}, nil
}
