package xform

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/mapstructure"

	"github.com/matzehuels/xformgraph/pkg/errors"
)

// PropertyType is the declared type of a configuration property.
type PropertyType int

const (
	PropertyUnknown PropertyType = iota
	PropertyString
	PropertyFloat
	PropertyInt
)

// String returns the persisted name of the type: STRING, FLOAT, INT or UNKNOWN.
func (t PropertyType) String() string {
	switch t {
	case PropertyString:
		return "STRING"
	case PropertyFloat:
		return "FLOAT"
	case PropertyInt:
		return "INT"
	default:
		return "UNKNOWN"
	}
}

// ParsePropertyType is the inverse of [PropertyType.String]. Unrecognized
// names yield PropertyUnknown.
func ParsePropertyType(s string) PropertyType {
	switch strings.ToUpper(s) {
	case "STRING":
		return PropertyString
	case "FLOAT":
		return PropertyFloat
	case "INT":
		return PropertyInt
	default:
		return PropertyUnknown
	}
}

// PropertyDescriptor declares one named, typed configuration property.
type PropertyDescriptor struct {
	Name string       `json:"name"`
	Type PropertyType `json:"type"`
}

// Config is a typed property bag. The set of properties and their types is
// fixed when the Config is created; values start unset.
//
// Setters ignore unknown names and type mismatches. Getters report ok=false
// for unknown, mismatched or unset properties.
type Config struct {
	types  map[string]PropertyType
	values map[string]any
	logger *log.Logger
}

// NewConfig creates a Config declaring the given properties.
func NewConfig(props ...PropertyDescriptor) *Config {
	c := &Config{
		types:  make(map[string]PropertyType, len(props)),
		values: make(map[string]any, len(props)),
	}
	for _, p := range props {
		c.types[p.Name] = p.Type
	}
	return c
}

// SetLogger sets the logger used to trace value changes.
func (c *Config) SetLogger(l *log.Logger) { c.logger = l }

func (c *Config) log() *log.Logger {
	if c.logger == nil {
		return log.Default()
	}
	return c.logger
}

// TypeFor returns the declared type of name, or PropertyUnknown.
func (c *Config) TypeFor(name string) PropertyType {
	if t, ok := c.types[name]; ok {
		return t
	}
	return PropertyUnknown
}

// Descriptors returns the declared properties sorted by name.
func (c *Config) Descriptors() []PropertyDescriptor {
	names := slices.Sorted(maps.Keys(c.types))
	out := make([]PropertyDescriptor, len(names))
	for i, n := range names {
		out[i] = PropertyDescriptor{Name: n, Type: c.types[n]}
	}
	return out
}

// IsSet reports whether name has been given a value.
func (c *Config) IsSet(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Values returns a snapshot of every set value keyed by property name.
// Values are string, float64 or int according to the declared type.
func (c *Config) Values() map[string]any { return maps.Clone(c.values) }

// SetString sets a STRING property.
func (c *Config) SetString(name, v string) { c.set(name, PropertyString, v) }

// SetFloat sets a FLOAT property.
func (c *Config) SetFloat(name string, v float64) { c.set(name, PropertyFloat, v) }

// SetInt sets an INT property.
func (c *Config) SetInt(name string, v int) { c.set(name, PropertyInt, v) }

func (c *Config) set(name string, t PropertyType, v any) {
	if c.TypeFor(name) != t {
		return
	}
	old, had := c.values[name]
	c.values[name] = v
	if had {
		c.log().Debug("config changed", "property", name, "old", old, "new", v)
	} else {
		c.log().Debug("config set", "property", name, "value", v)
	}
}

// String returns a STRING property value.
func (c *Config) String(name string) (string, bool) {
	v, ok := c.values[name].(string)
	return v, ok && c.TypeFor(name) == PropertyString
}

// Float returns a FLOAT property value.
func (c *Config) Float(name string) (float64, bool) {
	v, ok := c.values[name].(float64)
	return v, ok && c.TypeFor(name) == PropertyFloat
}

// Int returns an INT property value.
func (c *Config) Int(name string) (int, bool) {
	v, ok := c.values[name].(int)
	return v, ok && c.TypeFor(name) == PropertyInt
}

// Parse sets name from its textual form according to the declared type.
// Unknown names are ignored. Numbers that fail to parse return an
// INVALID_CONFIG error and leave the property unchanged.
func (c *Config) Parse(name, raw string) error {
	switch c.TypeFor(name) {
	case PropertyString:
		c.SetString(name, raw)
	case PropertyFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "property %s: not a float: %q", name, raw)
		}
		c.SetFloat(name, f)
	case PropertyInt:
		i, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "property %s: not an integer: %q", name, raw)
		}
		c.SetInt(name, i)
	}
	return nil
}

// Text renders the value of name in the textual form accepted by Parse.
// ok is false when the property is unset.
func (c *Config) Text(name string) (string, bool) {
	switch v := c.values[name].(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}

// Decode copies the set values into out, a pointer to a struct whose fields
// carry `mapstructure:"<property>"` tags. Unset properties leave the
// corresponding fields untouched, so defaults can be preloaded.
func (c *Config) Decode(out any) error {
	if err := mapstructure.Decode(c.values, out); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	return nil
}
