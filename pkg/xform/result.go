package xform

import "fmt"

// Result is an opaque value produced on an output port. The set of result
// kinds is closed; consumers type-switch on the concrete types.
type Result interface {
	result()
}

// Texture is a handle to a 2D image owned by the rendering backend.
// The graph never inspects pixels; it only moves handles between ports.
type Texture struct {
	ID     uint32 `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (Texture) result() {}

func (t Texture) String() string {
	return fmt.Sprintf("texture#%d(%dx%d)", t.ID, t.Width, t.Height)
}

// Values maps port names to results, for both the inputs handed to an
// xform and the outputs it produces.
type Values map[string]Result

// Texture returns the texture on port name. ok is false when the port is
// absent or holds a nil or non-texture result.
func (v Values) Texture(name string) (Texture, bool) {
	t, ok := v[name].(Texture)
	return t, ok
}
