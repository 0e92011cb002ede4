package graph

import (
	"testing"

	"github.com/matzehuels/xformgraph/pkg/xform"
)

// fakeXform is a configurable node used across the graph tests. Every
// output is a 2x2 texture whose ID is derived from the node name, so
// repeated applies produce equal results.
type fakeXform struct {
	xform.Base
	needsConfig bool
	fail        xform.Status
	applies     int
	released    bool
}

func (f *fakeXform) IsConfigured() bool {
	if !f.needsConfig {
		return true
	}
	return f.Config().IsSet("file_name")
}

func (f *fakeXform) Process(in xform.Values) (xform.Values, error) {
	f.applies++
	if f.fail != xform.StatusOK {
		return nil, xform.Failf(f.fail, "induced failure")
	}
	out := xform.Values{}
	for _, p := range f.OutputPorts() {
		out[p.Name] = xform.Texture{ID: uint32(len(f.Name())), Width: 2, Height: 2}
	}
	return out, nil
}

func (f *fakeXform) Release() { f.released = true }

func newFake(typ, name string, ins []string, outs []string) *fakeXform {
	f := &fakeXform{Base: xform.NewBase(typ, name, xform.PropertyDescriptor{Name: "file_name", Type: xform.PropertyString})}
	for _, in := range ins {
		f.AddInput(xform.InputPortDescriptor{Name: in, DataType: xform.TypeImage, Required: true})
	}
	for _, out := range outs {
		f.AddOutput(xform.OutputPortDescriptor{Name: out, DataType: xform.TypeImage})
	}
	_ = f.Init()
	return f
}

// newLoad mimics LoadFile: no inputs, one output, needs file_name.
func newLoad(name string) *fakeXform {
	f := newFake("LoadFile", name, nil, []string{"image"})
	f.needsConfig = true
	return f
}

func newSplit(name string) *fakeXform {
	return newFake("SplitChannel", name, []string{"image"}, []string{"red", "green", "blue", "alpha"})
}

// newSave mimics SaveFile: one required input, no outputs, needs file_name.
func newSave(name string) *fakeXform {
	f := newFake("SaveFile", name, []string{"image"}, nil)
	f.needsConfig = true
	f.Config().SetString("file_name", name+".png")
	return f
}

func newPass(name string) *fakeXform {
	return newFake("Pass", name, []string{"image"}, []string{"image"})
}

func mustAdd(t *testing.T, g *Graph, xs ...xform.Xform) {
	t.Helper()
	for _, x := range xs {
		if err := g.AddXform(x); err != nil {
			t.Fatalf("AddXform(%s): %v", x.Name(), err)
		}
	}
}

func mustConnect(t *testing.T, g *Graph, fromX, fromP, toX, toP string) {
	t.Helper()
	if err := g.AddConnection(fromX, fromP, toX, toP); err != nil {
		t.Fatalf("AddConnection(%s:%s -> %s:%s): %v", fromX, fromP, toX, toP, err)
	}
}

func wantState(t *testing.T, g *Graph, name string, want State) {
	t.Helper()
	got, err := g.StateFor(name)
	if err != nil {
		t.Fatalf("StateFor(%s): %v", name, err)
	}
	if got != want {
		t.Errorf("StateFor(%s) = %v, want %v", name, got, want)
	}
}

// splitGraph builds LoadFile_0 -> SplitChannel_0 -> four SaveFile nodes.
func splitGraph(t *testing.T) *Graph {
	t.Helper()
	g := New()
	load := newLoad("LoadFile_0")
	load.Config().SetString("file_name", "in.png")
	mustAdd(t, g, load, newSplit("SplitChannel_0"))
	mustConnect(t, g, "LoadFile_0", "image", "SplitChannel_0", "image")
	for _, ch := range []string{"red", "green", "blue", "alpha"} {
		name := "SaveFile_" + ch
		mustAdd(t, g, newSave(name))
		mustConnect(t, g, "SplitChannel_0", ch, name, "image")
	}
	return g
}

func inPort(x, p string) xform.InputPort { return xform.InputPort{Xform: x, Port: p} }

func optionalInput(name string) xform.InputPortDescriptor {
	return xform.InputPortDescriptor{Name: name, DataType: xform.TypeImage}
}
