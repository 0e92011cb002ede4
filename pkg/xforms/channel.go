package xforms

import (
	"errors"
	"image"

	"github.com/matzehuels/xformgraph/pkg/raster"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

// SplitChannel separates an image into four opaque grayscale images.
type SplitChannel struct {
	rendered
}

// NewSplitChannel creates a SplitChannel xform.
func NewSplitChannel(name string, store *raster.TextureStore) *SplitChannel {
	x := &SplitChannel{rendered: newRendered(TypeSplitChannel, name, store, len(raster.ChannelNames))}
	x.AddInput(imageIn("image", true))
	for _, ch := range raster.ChannelNames {
		x.AddOutput(imageOut(ch))
	}
	return x
}

func (x *SplitChannel) Process(in xform.Values) (xform.Values, error) {
	img, err := requiredInput(x.store, in, "image")
	if err != nil {
		return nil, err
	}
	out := make(xform.Values, len(raster.ChannelNames))
	for i, ch := range raster.SplitChannels(img) {
		tex, err := x.emit(i, ch)
		if err != nil {
			return nil, err
		}
		out[raster.ChannelNames[i]] = tex
	}
	return out, nil
}

// MergeChannel assembles an image from up to four grayscale channel
// images. At least one input must be connected.
type MergeChannel struct {
	rendered
}

// NewMergeChannel creates a MergeChannel xform.
func NewMergeChannel(name string, store *raster.TextureStore) *MergeChannel {
	x := &MergeChannel{rendered: newRendered(TypeMergeChannel, name, store, 1)}
	for _, ch := range raster.ChannelNames {
		x.AddInput(imageIn(ch, false))
	}
	x.AddOutput(imageOut("image"))
	return x
}

func (x *MergeChannel) Process(in xform.Values) (xform.Values, error) {
	var chans [4]*image.NRGBA
	for i, ch := range raster.ChannelNames {
		img, _, err := input(x.store, in, ch)
		if err != nil {
			return nil, err
		}
		chans[i] = img
	}
	merged, err := raster.MergeChannels(chans)
	switch {
	case errors.Is(err, raster.ErrNoInputs):
		return nil, xform.Failf(xform.StatusMissingInput, "no channel inputs are set")
	case errors.Is(err, raster.ErrMismatchedSize):
		return nil, xform.Failf(xform.StatusMismatchedSize, "channel inputs differ in size")
	case err != nil:
		return nil, err
	}
	tex, err := x.emit(0, merged)
	if err != nil {
		return nil, err
	}
	return xform.Values{"image": tex}, nil
}

// AddChannel sums two images of equal size.
type AddChannel struct {
	rendered
}

// NewAddChannel creates an AddChannel xform.
func NewAddChannel(name string, store *raster.TextureStore) *AddChannel {
	x := &AddChannel{rendered: newRendered(TypeAddChannel, name, store, 1)}
	x.AddInput(imageIn("image_1", true))
	x.AddInput(imageIn("image_2", true))
	x.AddOutput(imageOut("image"))
	return x
}

func (x *AddChannel) Process(in xform.Values) (xform.Values, error) {
	a, err := requiredInput(x.store, in, "image_1")
	if err != nil {
		return nil, err
	}
	b, err := requiredInput(x.store, in, "image_2")
	if err != nil {
		return nil, err
	}
	sum, err := raster.Add(a, b)
	if err != nil {
		return nil, xform.Failf(xform.StatusMismatchedSize, "inputs differ in size")
	}
	tex, err := x.emit(0, sum)
	if err != nil {
		return nil, err
	}
	return xform.Values{"image": tex}, nil
}
