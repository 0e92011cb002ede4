package xforms

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/xformgraph/pkg/graph"
	"github.com/matzehuels/xformgraph/pkg/raster"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

func writePNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	if err := raster.Save(path, img); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func make1(t *testing.T, reg *xform.Registry, typ, name string, conf map[string]string) xform.Xform {
	t.Helper()
	x, err := reg.Make(typ, name, conf)
	if err != nil {
		t.Fatalf("Make(%s): %v", typ, err)
	}
	if err := x.Init(); err != nil {
		t.Fatalf("Init(%s): %v", typ, err)
	}
	return x
}

func TestRegistryTypes(t *testing.T) {
	reg := NewRegistry(raster.NewTextureStore())
	want := []string{"AddChannel", "Brightness", "GaussianBlur", "LoadFile", "MergeChannel", "SaveFile", "SplitChannel"}
	got := reg.Types()
	if len(got) != len(want) {
		t.Fatalf("Types() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Types()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	first, _ := reg.Make(TypeLoadFile, "", nil)
	second, _ := reg.Make(TypeLoadFile, "", nil)
	if first.Name() != "LoadFile_0" || second.Name() != "LoadFile_1" {
		t.Errorf("default names = %s, %s, want LoadFile_0, LoadFile_1", first.Name(), second.Name())
	}

	x, _ := reg.Make(TypeGaussianBlur, "", nil)
	if x.Name() != "GaussianBlur_0" {
		t.Errorf("default name = %s, want GaussianBlur_0", x.Name())
	}
	if s, _ := x.Config().Float("sigma"); s != 2.4 {
		t.Errorf("default sigma = %v, want 2.4", s)
	}
	b, _ := reg.Make(TypeBrightness, "", nil)
	if !b.IsConfigured() {
		t.Error("Brightness should be configured by default")
	}
	l, _ := reg.Make(TypeLoadFile, "", nil)
	if l.IsConfigured() {
		t.Error("LoadFile should need a file name")
	}
}

func TestSplitAndSaveScenario(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in, 4, 3, color.NRGBA{R: 250, G: 120, B: 30, A: 255})

	store := raster.NewTextureStore()
	reg := NewRegistry(store)
	g := graph.New()

	load := make1(t, reg, TypeLoadFile, "LoadFile_0", nil)
	if err := g.AddXform(load); err != nil {
		t.Fatal(err)
	}
	if st, _ := g.StateFor("LoadFile_0"); st != graph.StateUnconfigured {
		t.Errorf("LoadFile_0 = %v, want UNCONFIGURED", st)
	}
	load.Config().SetString("file_name", in)
	g.RefreshStates()
	if st, _ := g.StateFor("LoadFile_0"); st != graph.StateGood {
		t.Errorf("LoadFile_0 = %v, want GOOD", st)
	}

	if err := g.AddXform(make1(t, reg, TypeSplitChannel, "SplitChannel_0", nil)); err != nil {
		t.Fatal(err)
	}
	if st, _ := g.StateFor("SplitChannel_0"); st != graph.StateInvalid {
		t.Errorf("SplitChannel_0 = %v, want INVALID", st)
	}
	if err := g.AddConnection("LoadFile_0", "image", "SplitChannel_0", "image"); err != nil {
		t.Fatal(err)
	}

	for _, ch := range raster.ChannelNames {
		name := "SaveFile_" + ch
		out := filepath.Join(dir, ch+".png")
		if err := g.AddXform(make1(t, reg, TypeSaveFile, name, map[string]string{"file_name": out})); err != nil {
			t.Fatal(err)
		}
		if err := g.AddConnection("SplitChannel_0", ch, name, "image"); err != nil {
			t.Fatal(err)
		}
	}

	rep := g.Evaluate(t.Context())
	if len(rep.Failed) != 0 {
		t.Fatalf("evaluation failed: %+v", rep.Errors)
	}
	for _, ch := range raster.ChannelNames {
		if r, ok := g.ResultAt(xform.OutputPort{Xform: "SplitChannel_0", Port: ch}); !ok || r == nil {
			t.Errorf("no result for SplitChannel_0:%s", ch)
		}
		if st, _ := g.StateFor("SaveFile_" + ch); st != graph.StateGood {
			t.Errorf("SaveFile_%s = %v, want GOOD", ch, st)
		}
	}

	red, err := raster.Load(filepath.Join(dir, "red.png"))
	if err != nil {
		t.Fatalf("load red.png: %v", err)
	}
	if px := red.NRGBAAt(1, 1); px != (color.NRGBA{R: 250, G: 250, B: 250, A: 255}) {
		t.Errorf("red channel pixel = %v", px)
	}

	live := store.Len()
	if err := g.DeleteXform("SplitChannel_0"); err != nil {
		t.Fatal(err)
	}
	if store.Len() != live-4 {
		t.Errorf("store holds %d textures after delete, want %d", store.Len(), live-4)
	}
	for _, ch := range raster.ChannelNames {
		if st, _ := g.StateFor("SaveFile_" + ch); st != graph.StateInvalid {
			t.Errorf("SaveFile_%s = %v after delete, want INVALID", ch, st)
		}
	}
	if r, ok := g.ResultAt(xform.OutputPort{Xform: "SplitChannel_0", Port: "red"}); ok || r != nil {
		t.Errorf("ResultAt(SplitChannel_0:red) = %v after delete", r)
	}
}

func TestApplyFailures(t *testing.T) {
	dir := t.TempDir()
	store := raster.NewTextureStore()
	reg := NewRegistry(store)

	small, _ := store.Upload(store.Allocate(1)[0], image.NewNRGBA(image.Rect(0, 0, 2, 2)))
	large, _ := store.Upload(store.Allocate(1)[0], image.NewNRGBA(image.Rect(0, 0, 3, 3)))
	dead := xform.Texture{ID: 999, Width: 1, Height: 1}

	tests := []struct {
		name   string
		typ    string
		conf   map[string]string
		inputs xform.Values
		want   xform.Status
	}{
		{"load missing file", TypeLoadFile, map[string]string{"file_name": filepath.Join(dir, "none.png")}, nil, xform.StatusFileReadFailed},
		{"load empty name", TypeLoadFile, map[string]string{"file_name": ""}, nil, xform.StatusMissingConfig},
		{"save unwritable", TypeSaveFile, map[string]string{"file_name": filepath.Join(dir, "x.png", "y.png")}, xform.Values{"image": small}, xform.StatusFileSaveFailed},
		{"save dead texture", TypeSaveFile, map[string]string{"file_name": filepath.Join(dir, "ok.png")}, xform.Values{"image": dead}, xform.StatusNullInput},
		{"merge nothing", TypeMergeChannel, nil, xform.Values{}, xform.StatusMissingInput},
		{"merge mismatched", TypeMergeChannel, nil, xform.Values{"red": small, "blue": large}, xform.StatusMismatchedSize},
		{"merge dead", TypeMergeChannel, nil, xform.Values{"red": dead}, xform.StatusNullInput},
		{"add mismatched", TypeAddChannel, nil, xform.Values{"image_1": small, "image_2": large}, xform.StatusMismatchedSize},
		{"add missing", TypeAddChannel, nil, xform.Values{"image_1": small}, xform.StatusMissingInput},
		{"blur bad sigma", TypeGaussianBlur, map[string]string{"sigma": "-1"}, xform.Values{"image": small}, xform.StatusInvalidConfig},
	}

	// Occupy the path component so the save cannot create its directory.
	if err := os.WriteFile(filepath.Join(dir, "x.png"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := make1(t, reg, tt.typ, "", tt.conf)
			_, err := xform.Apply(x, tt.inputs)
			if err == nil {
				t.Fatalf("Apply() succeeded, want %s", tt.want)
			}
			if err.Status != tt.want {
				t.Errorf("Apply() status = %s (%s), want %s", err.Status, err.Message, tt.want)
			}
		})
	}
}

func TestFiltersProduceTextures(t *testing.T) {
	store := raster.NewTextureStore()
	reg := NewRegistry(store)
	src := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	for i := range src.Pix {
		src.Pix[i] = 100
	}
	tex, _ := store.Upload(store.Allocate(1)[0], src)

	for _, typ := range []string{TypeBrightness, TypeGaussianBlur} {
		t.Run(typ, func(t *testing.T) {
			x := make1(t, reg, typ, "", map[string]string{"brightness": "100"})
			out, err := xform.Apply(x, xform.Values{"image": tex})
			if err != nil {
				t.Fatalf("Apply() = %v", err)
			}
			res, ok := out.Texture("image")
			if !ok || res.Width != 5 || res.Height != 5 || res.ID == tex.ID {
				t.Errorf("output = %+v", out["image"])
			}
		})
	}

	bright, _ := store.Image(mustTexture(t, reg, store, tex).ID)
	if got := bright.NRGBAAt(0, 0).R; got != 200 {
		t.Errorf("brightness 100 gave R=%d, want 200", got)
	}
}

func TestReleasedXformRejoinsGraph(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in, 2, 2, color.NRGBA{R: 40, G: 80, B: 120, A: 255})

	store := raster.NewTextureStore()
	reg := NewRegistry(store)
	g := graph.New()
	load := make1(t, reg, TypeLoadFile, "load", map[string]string{"file_name": in})
	split := make1(t, reg, TypeSplitChannel, "s", nil)
	for _, x := range []xform.Xform{load, split} {
		if err := g.AddXform(x); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddConnection("load", "image", "s", "image"); err != nil {
		t.Fatal(err)
	}

	if err := g.DeleteXform("s"); err != nil {
		t.Fatal(err)
	}
	if split.Initialized() {
		t.Error("released xform still reports initialized")
	}

	other := graph.New()
	if err := other.AddXform(split); err != nil {
		t.Fatal(err)
	}
	tex := uploadSolid(t, store, 2, 2)
	if _, err := xform.Apply(split, xform.Values{"image": tex}); err == nil || err.Status != xform.StatusNotInitialized {
		t.Fatalf("Apply() on released xform = %v, want NotInitialized", err)
	}

	if err := g.AddXform(split); err != nil {
		t.Fatal(err)
	}
	if err := g.AddConnection("load", "image", "s", "image"); err != nil {
		t.Fatal(err)
	}
	rep := g.Evaluate(t.Context())
	if len(rep.Failed) != 1 || rep.Failed[0] != "s" || rep.Errors[0].Status != xform.StatusNotInitialized {
		t.Fatalf("Evaluate() failed = %v errors = %+v, want s NotInitialized", rep.Failed, rep.Errors)
	}

	if err := split.Init(); err != nil {
		t.Fatal(err)
	}
	g.RefreshStates()
	if rep := g.Evaluate(t.Context()); len(rep.Failed) != 0 {
		t.Fatalf("Evaluate() after Init failed: %+v", rep.Errors)
	}
	if _, ok := g.ResultAt(xform.OutputPort{Xform: "s", Port: "red"}); !ok {
		t.Error("no red result after re-initialization")
	}
}

func uploadSolid(t *testing.T, store *raster.TextureStore, w, h int) xform.Texture {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	tex, err := store.Upload(store.Allocate(1)[0], img)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	return tex
}

func mustTexture(t *testing.T, reg *xform.Registry, store *raster.TextureStore, in xform.Texture) xform.Texture {
	t.Helper()
	x := make1(t, reg, TypeBrightness, "", map[string]string{"brightness": "100"})
	out, err := xform.Apply(x, xform.Values{"image": in})
	if err != nil {
		t.Fatalf("Apply() = %v", err)
	}
	tex, _ := out.Texture("image")
	return tex
}

func TestBrightnessFactor(t *testing.T) {
	tests := []struct {
		in   int
		want float64
	}{
		{-100, 0.5},
		{-50, 0.75},
		{0, 1},
		{50, 1.5},
		{100, 2},
		{250, 2},
		{-300, 0.5},
	}
	for _, tt := range tests {
		if got := BrightnessFactor(tt.in); got != tt.want {
			t.Errorf("BrightnessFactor(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
