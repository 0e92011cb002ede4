package xforms

import (
	"github.com/matzehuels/xformgraph/pkg/raster"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

const (
	propBrightness = "brightness"
	propSigma      = "sigma"

	defaultSigma = 2.4
)

// Brightness scales the colour of an image. The brightness property runs
// from -100 (half as bright) through 0 (unchanged) to 100 (twice as bright).
type Brightness struct {
	rendered
}

// NewBrightness creates a Brightness xform with brightness 0.
func NewBrightness(name string, store *raster.TextureStore) *Brightness {
	x := &Brightness{rendered: newRendered(TypeBrightness, name, store, 1,
		xform.PropertyDescriptor{Name: propBrightness, Type: xform.PropertyInt})}
	x.Config().SetInt(propBrightness, 0)
	x.AddInput(imageIn("image", true))
	x.AddOutput(imageOut("image"))
	return x
}

func (x *Brightness) IsConfigured() bool { return x.Config().IsSet(propBrightness) }

// BrightnessFactor maps a brightness setting to a colour multiplier:
// -100 → 0.5, 0 → 1, 100 → 2. Settings outside [-100, 100] are clamped.
func BrightnessFactor(br int) float64 {
	br = min(100, max(br, -100))
	if br <= 0 {
		return 1 + float64(br)/200
	}
	return 1 + float64(br)/100
}

func (x *Brightness) Process(in xform.Values) (xform.Values, error) {
	var p struct {
		Brightness int `mapstructure:"brightness"`
	}
	if err := x.Config().Decode(&p); err != nil {
		return nil, err
	}
	img, err := requiredInput(x.store, in, "image")
	if err != nil {
		return nil, err
	}
	tex, err := x.emit(0, raster.Brightness(img, BrightnessFactor(p.Brightness)))
	if err != nil {
		return nil, err
	}
	return xform.Values{"image": tex}, nil
}

// GaussianBlur blurs an image.
type GaussianBlur struct {
	rendered
}

// NewGaussianBlur creates a GaussianBlur xform with sigma 2.4.
func NewGaussianBlur(name string, store *raster.TextureStore) *GaussianBlur {
	x := &GaussianBlur{rendered: newRendered(TypeGaussianBlur, name, store, 1,
		xform.PropertyDescriptor{Name: propSigma, Type: xform.PropertyFloat})}
	x.Config().SetFloat(propSigma, defaultSigma)
	x.AddInput(imageIn("image", true))
	x.AddOutput(imageOut("image"))
	return x
}

func (x *GaussianBlur) Process(in xform.Values) (xform.Values, error) {
	p := struct {
		Sigma float64 `mapstructure:"sigma"`
	}{Sigma: defaultSigma}
	if err := x.Config().Decode(&p); err != nil {
		return nil, err
	}
	if p.Sigma <= 0 {
		return nil, xform.Failf(xform.StatusInvalidConfig, "sigma must be positive, got %g", p.Sigma)
	}
	img, err := requiredInput(x.store, in, "image")
	if err != nil {
		return nil, err
	}
	tex, err := x.emit(0, raster.GaussianBlur(img, p.Sigma))
	if err != nil {
		return nil, err
	}
	return xform.Values{"image": tex}, nil
}
