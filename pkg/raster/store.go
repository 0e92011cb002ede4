package raster

import (
	"errors"
	"image"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/xformgraph/pkg/xform"
)

// ErrUnknownTexture is returned for texture IDs the store did not allocate
// or has already released.
var ErrUnknownTexture = errors.New("unknown texture")

// TextureStore owns the pixel buffers behind texture handles. It is safe
// for concurrent use.
type TextureStore struct {
	mu     sync.Mutex
	next   uint32
	images map[uint32]*image.NRGBA
}

// NewTextureStore creates an empty store. IDs start at 1; 0 is never valid.
func NewTextureStore() *TextureStore {
	return &TextureStore{images: make(map[uint32]*image.NRGBA)}
}

// Allocate reserves n empty textures and returns their IDs.
func (s *TextureStore) Allocate(n int) []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint32, n)
	for i := range ids {
		s.next++
		ids[i] = s.next
		s.images[s.next] = image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	return ids
}

// Upload copies img into texture id, resizing it to match, and returns the
// texture handle.
func (s *TextureStore) Upload(id uint32, img image.Image) (xform.Texture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[id]; !ok {
		return xform.Texture{}, ErrUnknownTexture
	}
	cp := imaging.Clone(img)
	s.images[id] = cp
	return xform.Texture{ID: id, Width: cp.Bounds().Dx(), Height: cp.Bounds().Dy()}, nil
}

// Image returns the buffer behind id. Callers must not modify it.
func (s *TextureStore) Image(id uint32) (*image.NRGBA, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.images[id]
	return img, ok
}

// Resolve returns the buffer behind a texture handle, checking that its
// recorded size still matches.
func (s *TextureStore) Resolve(t xform.Texture) (*image.NRGBA, error) {
	img, ok := s.Image(t.ID)
	if !ok {
		return nil, ErrUnknownTexture
	}
	if b := img.Bounds(); b.Dx() != t.Width || b.Dy() != t.Height {
		return nil, errors.New("texture size does not match its handle")
	}
	return img, nil
}

// Release frees the given textures. Unknown IDs are ignored.
func (s *TextureStore) Release(ids ...uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.images, id)
	}
}

// Len returns the number of live textures.
func (s *TextureStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}
