package raster

import (
	"errors"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	// Extra decoders beyond the formats imaging registers.
	_ "golang.org/x/image/webp"
)

// Load decodes the image at path, applying EXIF orientation.
func Load(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}

// Save encodes img to path, choosing the format from the extension.
// Paths without a recognised image extension are written as PNG.
func Save(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if _, err := imaging.FormatFromFilename(path); errors.Is(err, imaging.ErrUnsupportedFormat) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := imaging.Encode(f, img, imaging.PNG); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return imaging.Save(img, path)
}
