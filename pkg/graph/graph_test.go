package graph

import (
	"testing"

	"github.com/matzehuels/xformgraph/pkg/errors"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

func TestAddXform(t *testing.T) {
	g := New()

	if err := g.AddXform(nil); !errors.Is(err, errors.ErrCodeGeneralFailure) {
		t.Errorf("AddXform(nil) = %v, want GENERAL_FAILURE", err)
	}

	mustAdd(t, g, newSplit("split"))
	if err := g.AddXform(newSplit("split")); !errors.Is(err, errors.ErrCodeXformExists) {
		t.Errorf("duplicate AddXform = %v, want XFORM_EXISTS", err)
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
	if ts, _ := g.EvaluationTime("split"); ts != 0 {
		t.Errorf("EvaluationTime = %d, want 0", ts)
	}
	wantState(t, g, "split", StateInvalid)
}

func TestLookups(t *testing.T) {
	g := New()
	mustAdd(t, g, newSplit("b"), newLoad("a"))

	if _, ok := g.Xform("a"); !ok {
		t.Error("Xform(a) not found")
	}
	if _, ok := g.Xform("zzz"); ok {
		t.Error("Xform(zzz) should not be found")
	}
	xs := g.Xforms()
	if len(xs) != 2 || xs[0].Name() != "a" || xs[1].Name() != "b" {
		t.Errorf("Xforms() not sorted by name")
	}
	if _, err := g.StateFor("zzz"); !errors.Is(err, errors.ErrCodeNoSuchXform) {
		t.Errorf("StateFor(zzz) = %v, want NO_SUCH_XFORM", err)
	}
}

func TestSplitChannelScenario(t *testing.T) {
	g := New()
	load := newLoad("LoadFile_0")
	mustAdd(t, g, load)
	wantState(t, g, "LoadFile_0", StateUnconfigured)

	load.Config().SetString("file_name", "in.png")
	g.RefreshStates()
	wantState(t, g, "LoadFile_0", StateGood)

	mustAdd(t, g, newSplit("SplitChannel_0"))
	wantState(t, g, "SplitChannel_0", StateInvalid)

	mustConnect(t, g, "LoadFile_0", "image", "SplitChannel_0", "image")
	// Both have never been evaluated, so equal timestamps make it stale.
	wantState(t, g, "SplitChannel_0", StateStale)

	channels := []string{"red", "green", "blue", "alpha"}
	for _, ch := range channels {
		name := "SaveFile_" + ch
		mustAdd(t, g, newSave(name))
		mustConnect(t, g, "SplitChannel_0", ch, name, "image")
	}

	rep := g.Evaluate(t.Context())
	if !rep.OK || len(rep.Failed) != 0 {
		t.Fatalf("Evaluate() = %+v", rep)
	}
	if len(rep.Applied) != 6 {
		t.Errorf("applied %d xforms, want 6", len(rep.Applied))
	}
	for _, ch := range channels {
		r, ok := g.ResultAt(xform.OutputPort{Xform: "SplitChannel_0", Port: ch})
		if !ok || r == nil {
			t.Errorf("ResultAt(SplitChannel_0:%s) is empty", ch)
		}
		wantState(t, g, "SaveFile_"+ch, StateGood)
	}
	wantState(t, g, "LoadFile_0", StateGood)
	wantState(t, g, "SplitChannel_0", StateGood)
}

func TestDeleteScenario(t *testing.T) {
	g := splitGraph(t)
	g.Evaluate(t.Context())

	x, _ := g.Xform("SplitChannel_0")
	split := x.(*fakeXform)

	if err := g.DeleteXform("SplitChannel_0"); err != nil {
		t.Fatalf("DeleteXform: %v", err)
	}
	if !split.released {
		t.Error("deleted xform was not released")
	}
	if n := len(g.Connections()); n != 0 {
		t.Errorf("%d connections remain, want 0", n)
	}
	if ok, _ := g.IsOutputConnected(xform.OutputPort{Xform: "LoadFile_0", Port: "image"}); ok {
		t.Error("LoadFile_0:image still connected")
	}
	for _, ch := range []string{"red", "green", "blue", "alpha"} {
		wantState(t, g, "SaveFile_"+ch, StateInvalid)
		if r, ok := g.ResultAt(xform.OutputPort{Xform: "SplitChannel_0", Port: ch}); ok || r != nil {
			t.Errorf("ResultAt(SplitChannel_0:%s) = %v, want nil", ch, r)
		}
	}
	if _, err := g.StateFor("SplitChannel_0"); err == nil {
		t.Error("state of deleted xform still present")
	}
	if err := g.DeleteXform("SplitChannel_0"); !errors.Is(err, errors.ErrCodeNoSuchXform) {
		t.Errorf("second DeleteXform = %v, want NO_SUCH_XFORM", err)
	}
	for _, n := range g.Order() {
		if n == "SplitChannel_0" {
			t.Error("deleted xform still in order")
		}
	}
}

func TestNextFreeNameLike(t *testing.T) {
	g := New()
	if got := g.NextFreeNameLike("Blur"); got != "Blur" {
		t.Errorf("NextFreeNameLike on empty graph = %q, want Blur", got)
	}

	mustAdd(t, g, newPass("Blur"))
	if got := g.NextFreeNameLike("Blur"); got != "Blur_1" {
		t.Errorf("NextFreeNameLike = %q, want Blur_1", got)
	}

	mustAdd(t, g, newPass("Blur_3"), newPass("Blur_x"), newPass("Blurry_9"), newPass("Old_Blur_12"))
	if got := g.NextFreeNameLike("Blur"); got != "Blur_4" {
		t.Errorf("NextFreeNameLike = %q, want Blur_4", got)
	}

	mustAdd(t, g, newPass("a.b"), newPass("axb_5"))
	if got := g.NextFreeNameLike("a.b"); got != "a.b_1" {
		t.Errorf("NextFreeNameLike(a.b) = %q, want a.b_1", got)
	}
}
