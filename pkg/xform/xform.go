package xform

import (
	stderrors "errors"
	"maps"
	"slices"

	"github.com/charmbracelet/log"
)

// Xform is one processing node: named input ports in, named output ports
// out, parameterized by a typed [Config].
//
// Implementations normally embed [Base] for the bookkeeping and provide
// Process. Init and IsConfigured may be overridden.
type Xform interface {
	// Name is the xform's identifier, unique within a graph.
	Name() string
	// Type is the registry tag the xform was made from.
	Type() string
	Config() *Config

	// InputPorts and OutputPorts return the declared ports sorted by name.
	InputPorts() []InputPortDescriptor
	OutputPorts() []OutputPortDescriptor
	InputPort(name string) (InputPortDescriptor, bool)
	OutputPort(name string) (OutputPortDescriptor, bool)

	// IsConfigured reports whether the config holds every value Process needs.
	IsConfigured() bool

	// Init acquires backend resources. An xform that has not been
	// initialized fails every apply with StatusNotInitialized.
	Init() error
	Initialized() bool

	// Process computes outputs from inputs. Failures should be returned as
	// *ApplyError; any other error is treated as an invalid configuration.
	Process(inputs Values) (Values, error)
}

// Releaser is implemented by xforms that hold backend resources. The graph
// calls Release when the xform is deleted.
type Releaser interface {
	Release()
}

// Base implements the bookkeeping half of [Xform].
type Base struct {
	name        string
	typ         string
	config      *Config
	inputs      map[string]InputPortDescriptor
	outputs     map[string]OutputPortDescriptor
	initialized bool
	logger      *log.Logger
}

// NewBase creates the bookkeeping for an xform of type typ named name,
// declaring the given configuration properties.
func NewBase(typ, name string, props ...PropertyDescriptor) Base {
	return Base{
		name:    name,
		typ:     typ,
		config:  NewConfig(props...),
		inputs:  make(map[string]InputPortDescriptor),
		outputs: make(map[string]OutputPortDescriptor),
	}
}

func (b *Base) Name() string    { return b.name }
func (b *Base) Type() string    { return b.typ }
func (b *Base) Config() *Config { return b.config }

// SetLogger sets the logger for the xform and its config.
func (b *Base) SetLogger(l *log.Logger) {
	b.logger = l
	b.config.SetLogger(l)
}

// Logger returns the xform's logger, or the default logger.
func (b *Base) Logger() *log.Logger {
	if b.logger == nil {
		return log.Default()
	}
	return b.logger
}

// AddInput declares an input port, replacing any input of the same name.
func (b *Base) AddInput(p InputPortDescriptor) {
	if _, ok := b.inputs[p.Name]; ok {
		b.Logger().Warn("replacing input port", "xform", b.name, "port", p.Name)
	}
	b.inputs[p.Name] = p
}

// AddOutput declares an output port, replacing any output of the same name.
func (b *Base) AddOutput(p OutputPortDescriptor) {
	if _, ok := b.outputs[p.Name]; ok {
		b.Logger().Warn("replacing output port", "xform", b.name, "port", p.Name)
	}
	b.outputs[p.Name] = p
}

func (b *Base) InputPorts() []InputPortDescriptor {
	out := make([]InputPortDescriptor, 0, len(b.inputs))
	for _, n := range slices.Sorted(maps.Keys(b.inputs)) {
		out = append(out, b.inputs[n])
	}
	return out
}

func (b *Base) OutputPorts() []OutputPortDescriptor {
	out := make([]OutputPortDescriptor, 0, len(b.outputs))
	for _, n := range slices.Sorted(maps.Keys(b.outputs)) {
		out = append(out, b.outputs[n])
	}
	return out
}

func (b *Base) InputPort(name string) (InputPortDescriptor, bool) {
	p, ok := b.inputs[name]
	return p, ok
}

func (b *Base) OutputPort(name string) (OutputPortDescriptor, bool) {
	p, ok := b.outputs[name]
	return p, ok
}

// IsConfigured returns true. Xforms with mandatory properties override it.
func (b *Base) IsConfigured() bool { return true }

// Init marks the xform initialized. Xforms that allocate resources override
// it and call MarkInitialized on success.
func (b *Base) Init() error {
	b.MarkInitialized()
	return nil
}

func (b *Base) MarkInitialized()  { b.initialized = true }
func (b *Base) Initialized() bool { return b.initialized }

// MarkReleased clears the initialized flag after an xform frees its
// resources. Apply then fails with StatusNotInitialized until Init runs
// again.
func (b *Base) MarkReleased() { b.initialized = false }

// Apply runs one xform: it checks initialization, configuration and
// required inputs, then calls Process. Failures come back as *ApplyError
// carrying the xform's name.
func Apply(x Xform, inputs Values) (Values, *ApplyError) {
	fail := func(e *ApplyError) (Values, *ApplyError) {
		e.Xform = x.Name()
		return nil, e
	}
	if !x.Initialized() {
		return fail(Failf(StatusNotInitialized, "xform has not been initialized"))
	}
	if !x.IsConfigured() {
		return fail(Failf(StatusMissingConfig, "xform is missing required configuration"))
	}
	for _, p := range x.InputPorts() {
		if p.Required && inputs[p.Name] == nil {
			return fail(Failf(StatusMissingInput, "required input %q is not set", p.Name))
		}
	}

	out, err := x.Process(inputs)
	if err != nil {
		var ae *ApplyError
		if stderrors.As(err, &ae) {
			cp := *ae
			return fail(&cp)
		}
		return fail(Failf(StatusInvalidConfig, "%v", err))
	}
	if out == nil {
		out = Values{}
	}
	return out, nil
}
