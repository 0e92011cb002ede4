package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/xformgraph/pkg/graph"
	"github.com/matzehuels/xformgraph/pkg/raster"
	"github.com/matzehuels/xformgraph/pkg/xforms"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	reg := xforms.NewRegistry(raster.NewTextureStore())
	g := graph.New()
	for _, spec := range []struct {
		typ, name string
		conf      map[string]string
	}{
		{xforms.TypeLoadFile, "load", map[string]string{"file_name": "in.png"}},
		{xforms.TypeSplitChannel, "split", nil},
		{xforms.TypeSaveFile, "save", nil},
	} {
		x, err := reg.Make(spec.typ, spec.name, spec.conf)
		if err != nil {
			t.Fatal(err)
		}
		if err := g.AddXform(x); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddConnection("load", "image", "split", "image"); err != nil {
		t.Fatal(err)
	}
	if err := g.AddConnection("split", "red", "save", "image"); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		`"load" [label="load\nLoadFile", fillcolor="palegreen"];`,
		`"save" [label="save\nSaveFile", fillcolor="lightgrey"];`,
		`"load" -> "split" [label="image → image"];`,
		`"split" [label="split\nSplitChannel", fillcolor="lightyellow"];`,
		`"split" -> "save" [label="red → image"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{Detailed: true, HideStates: true})

	if !strings.Contains(dot, `file_name: in.png`) {
		t.Errorf("detailed label missing config:\n%s", dot)
	}
	if !strings.Contains(dot, `state: UNCONFIGURED`) {
		t.Errorf("detailed label missing state:\n%s", dot)
	}
	if strings.Contains(dot, "fillcolor=\"lightgrey\"") {
		t.Errorf("HideStates should drop state colours:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`
	if !strings.HasPrefix(out, want) {
		t.Errorf("normalizeViewBox = %s, want prefix %s", out, want)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("no viewBox should pass through, got %s", got)
	}
}
