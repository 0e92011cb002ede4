package xform

import (
	"errors"
	"testing"
)

type stubXform struct {
	Base
	process func(Values) (Values, error)
}

func newStub(name string) *stubXform {
	s := &stubXform{Base: NewBase("Stub", name,
		PropertyDescriptor{Name: "gain", Type: PropertyFloat},
		PropertyDescriptor{Name: "label", Type: PropertyString},
	)}
	s.AddInput(InputPortDescriptor{Name: "image", DataType: TypeImage, Required: true})
	s.AddInput(InputPortDescriptor{Name: "mask", DataType: TypeImage})
	s.AddOutput(OutputPortDescriptor{Name: "image", DataType: TypeImage})
	return s
}

func (s *stubXform) Process(in Values) (Values, error) {
	if s.process != nil {
		return s.process(in)
	}
	return Values{"image": in["image"]}, nil
}

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
		want bool
	}{
		{"same type", TypeImage, TypeImage, true},
		{"different type", TypeImage, TypeChannel, false},
		{"input wildcard", AnyType, TypeChannel, true},
		{"output wildcard", TypeImage, AnyType, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := InputPortDescriptor{Name: "in", DataType: tt.in}
			out := OutputPortDescriptor{Name: "out", DataType: tt.out}
			if got := in.IsCompatible(out); got != tt.want {
				t.Errorf("IsCompatible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPortRefs(t *testing.T) {
	out, err := ParseOutputPort("load:image")
	if err != nil {
		t.Fatalf("ParseOutputPort: %v", err)
	}
	if out != (OutputPort{Xform: "load", Port: "image"}) {
		t.Errorf("ParseOutputPort = %+v", out)
	}
	if out.String() != "load:image" {
		t.Errorf("String() = %q", out.String())
	}

	if _, err := ParseInputPort("nocolon"); err == nil {
		t.Error("ParseInputPort accepted a reference without a port")
	}

	a := InputPort{Xform: "a", Port: "z"}
	b := InputPort{Xform: "b", Port: "a"}
	if a.Compare(b) >= 0 || b.Compare(a) <= 0 || a.Compare(a) != 0 {
		t.Error("InputPort.Compare does not order by xform first")
	}
}

func TestBasePorts(t *testing.T) {
	s := newStub("s")

	ins := s.InputPorts()
	if len(ins) != 2 || ins[0].Name != "image" || ins[1].Name != "mask" {
		t.Fatalf("InputPorts() = %+v, want sorted [image mask]", ins)
	}
	if _, ok := s.OutputPort("image"); !ok {
		t.Error("OutputPort(image) not found")
	}
	if _, ok := s.OutputPort("mask"); ok {
		t.Error("inputs and outputs should be namespaced separately")
	}

	s.AddInput(InputPortDescriptor{Name: "mask", DataType: TypeChannel})
	if p, _ := s.InputPort("mask"); p.DataType != TypeChannel {
		t.Errorf("AddInput did not replace descriptor: %+v", p)
	}
}

func TestApply(t *testing.T) {
	tex := Texture{ID: 7, Width: 4, Height: 4}

	t.Run("not initialized", func(t *testing.T) {
		s := newStub("s")
		_, err := Apply(s, Values{"image": tex})
		if err == nil || err.Status != StatusNotInitialized {
			t.Fatalf("Apply() = %v, want NotInitialized", err)
		}
		if err.Xform != "s" {
			t.Errorf("Xform = %q, want s", err.Xform)
		}
	})

	t.Run("missing required input", func(t *testing.T) {
		s := newStub("s")
		_ = s.Init()
		_, err := Apply(s, Values{"mask": tex})
		if err == nil || err.Status != StatusMissingInput {
			t.Fatalf("Apply() = %v, want MissingInput", err)
		}
	})

	t.Run("ok", func(t *testing.T) {
		s := newStub("s")
		_ = s.Init()
		out, err := Apply(s, Values{"image": tex})
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if got, ok := out.Texture("image"); !ok || got != tex {
			t.Errorf("output = %v, want %v", out["image"], tex)
		}
	})

	t.Run("apply error passes through", func(t *testing.T) {
		s := newStub("s")
		s.process = func(Values) (Values, error) {
			return nil, Failf(StatusMismatchedSize, "sizes differ")
		}
		_ = s.Init()
		_, err := Apply(s, Values{"image": tex})
		if err == nil || err.Status != StatusMismatchedSize || err.Xform != "s" {
			t.Fatalf("Apply() = %v, want MismatchedSize from s", err)
		}
	})

	t.Run("plain error is invalid config", func(t *testing.T) {
		s := newStub("s")
		s.process = func(Values) (Values, error) { return nil, errors.New("boom") }
		_ = s.Init()
		_, err := Apply(s, Values{"image": tex})
		if err == nil || err.Status != StatusInvalidConfig {
			t.Fatalf("Apply() = %v, want InvalidConfig", err)
		}
	})
}

func TestStatusString(t *testing.T) {
	if StatusMismatchedSize.String() != "MismatchedSize" {
		t.Errorf("String() = %q", StatusMismatchedSize.String())
	}
	if int(StatusAlreadyExists) != 10 {
		t.Errorf("AlreadyExists = %d, want 10", StatusAlreadyExists)
	}
	if Status(42).String() != "Status(42)" {
		t.Errorf("String() = %q", Status(42).String())
	}
}
