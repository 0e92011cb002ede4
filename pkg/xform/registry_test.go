package xform

import (
	"testing"

	"github.com/matzehuels/xformgraph/pkg/errors"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	if err := r.Register("Stub", func(name string) Xform { return newStub(name) }); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return r
}

func TestRegistryMake(t *testing.T) {
	r := newTestRegistry(t)

	x, err := r.Make("Stub", "", map[string]string{"gain": "0.5", "label": "hi", "extra": "ignored"})
	if err != nil {
		t.Fatalf("Make() error = %v", err)
	}
	if x.Name() != "Stub_0" {
		t.Errorf("Name() = %q, want Stub_0", x.Name())
	}
	if v, _ := x.Config().Float("gain"); v != 0.5 {
		t.Errorf("gain = %v, want 0.5", v)
	}

	y, _ := r.Make("Stub", "", nil)
	if y.Name() != "Stub_1" {
		t.Errorf("second default name = %q, want Stub_1", y.Name())
	}

	named, _ := r.Make("Stub", "custom", nil)
	if named.Name() != "custom" {
		t.Errorf("Name() = %q, want custom", named.Name())
	}
}

func TestRegistryErrors(t *testing.T) {
	r := newTestRegistry(t)

	if _, err := r.Make("Nope", "", nil); !errors.Is(err, errors.ErrCodeUnknownType) {
		t.Errorf("Make(unknown) error = %v, want UNKNOWN_XFORM_TYPE", err)
	}
	if _, err := r.Make("Stub", "", map[string]string{"gain": "loud"}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Make(bad float) error = %v, want INVALID_CONFIG", err)
	}
	if _, err := r.Make("Stub", "a:b", nil); !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("Make(bad name) error = %v, want INVALID_NAME", err)
	}
	if err := r.Register("Stub", func(name string) Xform { return newStub(name) }); err == nil {
		t.Error("duplicate Register should fail")
	}
}

func TestRegistryDescribe(t *testing.T) {
	r := newTestRegistry(t)

	info, err := r.Describe("Stub")
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if len(info.Inputs) != 2 || len(info.Outputs) != 1 || len(info.Properties) != 2 {
		t.Errorf("Describe() = %+v", info)
	}

	x, _ := r.Make("Stub", "", nil)
	if x.Name() != "Stub_0" {
		t.Errorf("Describe advanced the naming counter: got %q", x.Name())
	}
	if got := r.Types(); len(got) != 1 || got[0] != "Stub" {
		t.Errorf("Types() = %v", got)
	}
}
