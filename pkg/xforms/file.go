package xforms

import (
	"github.com/matzehuels/xformgraph/pkg/raster"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

const propFileName = "file_name"

type fileParams struct {
	FileName string `mapstructure:"file_name"`
}

// LoadFile reads an image from disk.
type LoadFile struct {
	rendered
}

// NewLoadFile creates an unconfigured LoadFile xform.
func NewLoadFile(name string, store *raster.TextureStore) *LoadFile {
	x := &LoadFile{rendered: newRendered(TypeLoadFile, name, store, 1,
		xform.PropertyDescriptor{Name: propFileName, Type: xform.PropertyString})}
	x.AddOutput(imageOut("image"))
	return x
}

func (x *LoadFile) IsConfigured() bool { return x.Config().IsSet(propFileName) }

func (x *LoadFile) Process(xform.Values) (xform.Values, error) {
	var p fileParams
	if err := x.Config().Decode(&p); err != nil {
		return nil, err
	}
	if p.FileName == "" {
		return nil, xform.Failf(xform.StatusMissingConfig, "file_name is not set")
	}
	img, err := raster.Load(p.FileName)
	if err != nil {
		return nil, xform.Failf(xform.StatusFileReadFailed, "read %s: %v", p.FileName, err)
	}
	tex, err := x.emit(0, img)
	if err != nil {
		return nil, err
	}
	x.Logger().Debug("loaded image", "xform", x.Name(), "file", p.FileName, "texture", tex)
	return xform.Values{"image": tex}, nil
}

// SaveFile writes its input image to disk. It has no outputs.
type SaveFile struct {
	xform.Base
	store *raster.TextureStore
}

// NewSaveFile creates an unconfigured SaveFile xform.
func NewSaveFile(name string, store *raster.TextureStore) *SaveFile {
	x := &SaveFile{
		Base: xform.NewBase(TypeSaveFile, name,
			xform.PropertyDescriptor{Name: propFileName, Type: xform.PropertyString}),
		store: store,
	}
	x.AddInput(imageIn("image", true))
	return x
}

func (x *SaveFile) IsConfigured() bool { return x.Config().IsSet(propFileName) }

func (x *SaveFile) Process(in xform.Values) (xform.Values, error) {
	var p fileParams
	if err := x.Config().Decode(&p); err != nil {
		return nil, err
	}
	if p.FileName == "" {
		return nil, xform.Failf(xform.StatusMissingConfig, "file_name is not set")
	}
	img, err := requiredInput(x.store, in, "image")
	if err != nil {
		return nil, err
	}
	if err := raster.Save(p.FileName, img); err != nil {
		return nil, xform.Failf(xform.StatusFileSaveFailed, "write %s: %v", p.FileName, err)
	}
	x.Logger().Debug("saved image", "xform", x.Name(), "file", p.FileName)
	return xform.Values{}, nil
}
