// Package xforms provides the built-in xform types, rendered on the CPU by
// package raster.
//
// Every type is registered under its type name. Xforms made without a name
// are numbered per type from zero: "{Type}_0", "{Type}_1" and so on.
//
//	LoadFile      file_name → image
//	SaveFile      image → (file on disk)
//	SplitChannel  image → red, green, blue, alpha
//	MergeChannel  [red], [green], [blue], [alpha] → image
//	Brightness    image → image (brightness INT, -100..100)
//	GaussianBlur  image → image (sigma FLOAT)
//	AddChannel    image_1, image_2 → image
package xforms

import (
	"image"

	"github.com/matzehuels/xformgraph/pkg/raster"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

// Type names.
const (
	TypeLoadFile     = "LoadFile"
	TypeSaveFile     = "SaveFile"
	TypeSplitChannel = "SplitChannel"
	TypeMergeChannel = "MergeChannel"
	TypeBrightness   = "Brightness"
	TypeGaussianBlur = "GaussianBlur"
	TypeAddChannel   = "AddChannel"
)

// NewRegistry returns a registry holding every built-in type, rendering
// into store.
func NewRegistry(store *raster.TextureStore) *xform.Registry {
	reg := xform.NewRegistry()
	// Registration into a fresh registry cannot collide.
	_ = Register(reg, store)
	return reg
}

// Register adds every built-in type to reg.
func Register(reg *xform.Registry, store *raster.TextureStore) error {
	ctors := map[string]xform.Constructor{
		TypeLoadFile:     func(name string) xform.Xform { return NewLoadFile(name, store) },
		TypeSaveFile:     func(name string) xform.Xform { return NewSaveFile(name, store) },
		TypeSplitChannel: func(name string) xform.Xform { return NewSplitChannel(name, store) },
		TypeMergeChannel: func(name string) xform.Xform { return NewMergeChannel(name, store) },
		TypeBrightness:   func(name string) xform.Xform { return NewBrightness(name, store) },
		TypeGaussianBlur: func(name string) xform.Xform { return NewGaussianBlur(name, store) },
		TypeAddChannel:   func(name string) xform.Xform { return NewAddChannel(name, store) },
	}
	for _, typ := range []string{
		TypeLoadFile, TypeSaveFile, TypeSplitChannel, TypeMergeChannel,
		TypeBrightness, TypeGaussianBlur, TypeAddChannel,
	} {
		if err := reg.Register(typ, ctors[typ]); err != nil {
			return err
		}
	}
	return nil
}

// rendered is the shared part of xforms that write output textures.
// Init allocates one texture per output; Release frees them.
type rendered struct {
	xform.Base
	store    *raster.TextureStore
	outputs  int
	textures []uint32
}

func newRendered(typ, name string, store *raster.TextureStore, outputs int, props ...xform.PropertyDescriptor) rendered {
	return rendered{
		Base:    xform.NewBase(typ, name, props...),
		store:   store,
		outputs: outputs,
	}
}

func (r *rendered) Init() error {
	if r.Initialized() {
		return nil
	}
	r.textures = r.store.Allocate(r.outputs)
	r.MarkInitialized()
	return nil
}

func (r *rendered) Release() {
	r.store.Release(r.textures...)
	r.textures = nil
	r.MarkReleased()
}

// emit uploads img into the i-th output texture.
func (r *rendered) emit(i int, img image.Image) (xform.Texture, error) {
	if i >= len(r.textures) {
		return xform.Texture{}, xform.Failf(xform.StatusNotInitialized, "output %d has no texture", i)
	}
	tex, err := r.store.Upload(r.textures[i], img)
	if err != nil {
		return tex, xform.Failf(xform.StatusNotInitialized, "output texture: %v", err)
	}
	return tex, nil
}

// input resolves the texture on port. ok is false when the port carries
// nothing. A value that is not a live texture is a NullInput failure.
func input(store *raster.TextureStore, in xform.Values, port string) (img *image.NRGBA, ok bool, err error) {
	r, present := in[port]
	if !present || r == nil {
		return nil, false, nil
	}
	tex, isTex := r.(xform.Texture)
	if !isTex {
		return nil, false, xform.Failf(xform.StatusNullInput, "input %s is not a texture", port)
	}
	img, rerr := store.Resolve(tex)
	if rerr != nil {
		return nil, false, xform.Failf(xform.StatusNullInput, "input %s: %v", port, rerr)
	}
	return img, true, nil
}

// requiredInput is input for ports that must carry a texture.
func requiredInput(store *raster.TextureStore, in xform.Values, port string) (*image.NRGBA, error) {
	img, ok, err := input(store, in, port)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, xform.Failf(xform.StatusInputNotSet, "input %s is not set", port)
	}
	return img, nil
}

func imageIn(name string, required bool) xform.InputPortDescriptor {
	return xform.InputPortDescriptor{Name: name, DataType: xform.TypeImage, Required: required}
}

func imageOut(name string) xform.OutputPortDescriptor {
	return xform.OutputPortDescriptor{Name: name, DataType: xform.TypeImage}
}
